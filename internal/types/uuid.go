package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Total length is capped at 12 characters, e.g., `in_xYZ12A8Q`.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	shortId := strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))

	return shortId
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_ORGANIZATION    = "org"
	UUID_PREFIX_PAYMENT         = "pay"
	UUID_PREFIX_BILLING_LOG     = "blog"
	UUID_PREFIX_LOCATION        = "loc"
	UUID_PREFIX_STAFF           = "staff"
	UUID_PREFIX_ROLE            = "role"
	UUID_PREFIX_LEAVE           = "leave"
	UUID_PREFIX_DOCUMENT        = "doc"
	UUID_PREFIX_ACKNOWLEDGEMENT = "ack"
	UUID_PREFIX_SHIFT           = "shift"
	UUID_PREFIX_ATTENDANCE      = "att"
	UUID_PREFIX_PAYROLL_ENTRY   = "pr"
	UUID_PREFIX_REQUEST         = "req"
	UUID_PREFIX_IDEMPOTENCY     = "idem"
)

const (
	// SHORT_ID_PREFIX_ACCOUNT_REFERENCE prefixes the reference shown on the payer's phone
	SHORT_ID_PREFIX_ACCOUNT_REFERENCE = "AFY"
)
