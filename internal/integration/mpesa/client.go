// Package mpesa integrates Safaricom Daraja STK push (Lipa na M-Pesa Online)
package mpesa

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/afyastaff/afyastaff/internal/cache"
	"github.com/afyastaff/afyastaff/internal/config"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/httpclient"
	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
)

const (
	tokenPath   = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath = "/mpesa/stkpush/v1/processrequest"

	transactionType = "CustomerPayBillOnline"

	// ResultCodeSuccess and ResultCodeCancelled are STK callback result codes
	ResultCodeSuccess   = 0
	ResultCodeCancelled = 1032
)

// Daraja timestamps are East Africa Time
var eat = time.FixedZone("EAT", 3*60*60)

// Gateway pushes payment prompts to the payer's phone
type Gateway struct {
	cfg    config.MpesaConfig
	client httpclient.Client
	cache  cache.Cache
	log    *logger.Logger
	now    func() time.Time
}

var _ integration.Gateway = (*Gateway)(nil)

func NewGateway(cfg *config.Configuration, client httpclient.Client, c cache.Cache, log *logger.Logger) *Gateway {
	return &Gateway{
		cfg:    cfg.Mpesa,
		client: client,
		cache:  c,
		log:    log,
		now:    time.Now,
	}
}

func (g *Gateway) Provider() types.PaymentProvider {
	return types.PaymentProviderMpesa
}

func (g *Gateway) Initiate(ctx context.Context, req *integration.InitiateRequest) (*integration.InitiateResult, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := g.now().In(eat).Format("20060102150405")
	body := stkPushRequest{
		BusinessShortCode: g.cfg.ShortCode,
		Password:          base64.StdEncoding.EncodeToString([]byte(g.cfg.ShortCode + g.cfg.Passkey + timestamp)),
		Timestamp:         timestamp,
		TransactionType:   transactionType,
		Amount:            wholeShillings(req.AmountCents),
		PartyA:            req.Phone,
		PartyB:            g.cfg.ShortCode,
		PhoneNumber:       req.Phone,
		CallBackURL:       g.callbackURL(),
		AccountReference:  req.AccountReference,
		TransactionDesc:   fmt.Sprintf("AfyaStaff %s plan", req.PlanName),
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to encode stk push").
			Mark(ierr.ErrSystem)
	}

	resp, err := g.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     g.cfg.BaseURL + stkPushPath,
		Headers: map[string]string{"Authorization": "Bearer " + token},
		Body:    payload,
	})
	if err != nil {
		return nil, g.providerError(err, req)
	}

	var out stkPushResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, ierr.WithError(err).
			WithHint("M-Pesa returned an unexpected response, please try again").
			Mark(ierr.ErrTransient)
	}
	if out.ResponseCode != "0" {
		return nil, ierr.NewError("stk push rejected").
			WithHint(lo.Ternary(out.ResponseDescription != "", out.ResponseDescription, "M-Pesa rejected the payment request")).
			WithReportableDetails(map[string]any{
				"payment_id":    req.PaymentID,
				"response_code": out.ResponseCode,
			}).
			Mark(ierr.ErrProvider)
	}

	g.log.Infow("mpesa stk push sent",
		"payment_id", req.PaymentID,
		"organization_id", req.OrganizationID,
		"checkout_request_id", out.CheckoutRequestID,
	)

	return &integration.InitiateResult{
		ProviderReference: out.CheckoutRequestID,
		Message:           "Check your phone and enter your M-Pesa PIN to approve the payment",
	}, nil
}

// accessToken returns a cached OAuth token, fetching a new one when expired
func (g *Gateway) accessToken(ctx context.Context) (string, error) {
	key := cache.GenerateKey(cache.PrefixMpesaToken, g.cfg.ConsumerKey)
	if v, ok := g.cache.Get(ctx, key); ok {
		if token, ok := v.(string); ok {
			return token, nil
		}
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(g.cfg.ConsumerKey + ":" + g.cfg.ConsumerSecret))
	resp, err := g.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     g.cfg.BaseURL + tokenPath,
		Headers: map[string]string{"Authorization": "Basic " + credentials},
	})
	if err != nil {
		g.log.Errorw("failed to fetch mpesa access token", "error", err)
		if ierr.IsTransient(err) {
			return "", err
		}
		return "", ierr.WithError(err).
			WithHint("M-Pesa is not available right now").
			Mark(ierr.ErrProvider)
	}

	var out tokenResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil || out.AccessToken == "" {
		return "", ierr.NewError("invalid mpesa token response").
			WithHint("M-Pesa is not available right now").
			Mark(ierr.ErrProvider)
	}

	ttl := time.Duration(0)
	if seconds, err := strconv.Atoi(out.ExpiresIn); err == nil && seconds > 60 {
		ttl = time.Duration(seconds-60) * time.Second
	}
	g.cache.Set(ctx, key, out.AccessToken, ttl)
	return out.AccessToken, nil
}

// providerError keeps transient failures transient and passes Daraja's message through otherwise
func (g *Gateway) providerError(err error, req *integration.InitiateRequest) error {
	g.log.Errorw("mpesa stk push failed", "error", err, "payment_id", req.PaymentID)
	if ierr.IsTransient(err) {
		return err
	}

	message := "M-Pesa rejected the payment request"
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		var body errorResponse
		if json.Unmarshal(httpErr.Response, &body) == nil && body.ErrorMessage != "" {
			message = body.ErrorMessage
		}
	}
	return ierr.WithError(err).
		WithHint(message).
		WithReportableDetails(map[string]any{"payment_id": req.PaymentID}).
		Mark(ierr.ErrProvider)
}

// wholeShillings rounds up to whole KES, the smallest unit STK push accepts
// callbackURL carries the shared token the webhook route checks
func (g *Gateway) callbackURL() string {
	if g.cfg.CallbackToken == "" {
		return g.cfg.CallbackURL
	}
	u, err := url.Parse(g.cfg.CallbackURL)
	if err != nil {
		g.log.Errorw("invalid mpesa callback url", "error", err)
		return g.cfg.CallbackURL
	}
	q := u.Query()
	q.Set(types.QueryCallbackToken, g.cfg.CallbackToken)
	u.RawQuery = q.Encode()
	return u.String()
}

func wholeShillings(cents int64) int64 {
	return (cents + 99) / 100
}

