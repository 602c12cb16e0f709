package site

import (
	"time"

	"github.com/dmitrymomot/formkit/pkg/environment"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
)

// Config holds the site settings, read from the environment.
type Config struct {
	Env         environment.Environment `env:"APP_ENV" envDefault:"development"`
	ServiceName string                  `env:"SERVICE_NAME" envDefault:"formsite"`
	HTTP        httpserver.Config

	// ResetDelay overrides the per-form delay before a submitted form is cleared.
	ResetDelay time.Duration `env:"FORM_RESET_DELAY"`

	DatastarScript string `env:"DATASTAR_SCRIPT_URL" envDefault:"https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"`
	PaymentPayload string `env:"PAYMENT_QR_PAYLOAD" envDefault:"https://pay.example.com/event-registration"`
	PaymentQRSize  int    `env:"PAYMENT_QR_SIZE" envDefault:"220"`
}
