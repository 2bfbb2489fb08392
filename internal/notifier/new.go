package notifier

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
)

// SendTimeout bounds one push delivery request.
const SendTimeout = 30 * time.Second

type implNotifier struct {
	endpoint  string
	appScheme string
	client    *http.Client
	logger    logger.Logger
}

// New creates a Notifier posting to endpoint. Deep links use appScheme.
func New(endpoint, appScheme string, log logger.Logger) Notifier {
	return &implNotifier{
		endpoint:  endpoint,
		appScheme: appScheme,
		client:    &http.Client{Timeout: SendTimeout},
		logger:    log,
	}
}
