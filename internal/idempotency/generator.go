// Package idempotency derives deterministic keys for operations that must not be repeated
package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Scope namespaces keys so equal params in different flows never collide
type Scope string

const (
	// ScopePayment guards a payment initiation retried by the client
	ScopePayment Scope = "payment"
	// ScopeAutoPay guards one scheduled charge per billing period
	ScopeAutoPay Scope = "autopay"
	// ScopeAcknowledgement yields one acknowledgement per staff and document version
	ScopeAcknowledgement Scope = "acknowledgement"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateKey hashes the scope and the sorted params
func (g *Generator) GenerateKey(scope Scope, params map[string]interface{}) string {
	keys := lo.Keys(params)
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(scope))
	for _, k := range keys {
		fmt.Fprintf(&b, ":%s=%v", k, params[k])
	}

	hash := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%s-%s", scope, hex.EncodeToString(hash[:8]))
}

func (g *Generator) ValidateKey(scope Scope, params map[string]interface{}, key string) bool {
	return g.GenerateKey(scope, params) == key
}
