package http

import (
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/trustcentric/requestlog/common/logger"
	interceptors "github.com/trustcentric/requestlog/http/interceptors/resty"
)

// NewRestyWithClient wraps an http.Client in a resty client that propagates
// traces and request identity on every outbound call.
func NewRestyWithClient(client *http.Client, log *logger.Logger, opt ...interceptors.InterceptorOpt) *resty.Client {
	restyClient := resty.NewWithClient(client)
	interceptors.InjectInterceptors(restyClient, opt...)

	if log != nil {
		restyClient.SetLogger(log)
	}
	return restyClient
}
