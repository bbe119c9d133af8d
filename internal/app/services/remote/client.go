package remote

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/responses"
	"carelog-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type remoteClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
}

// NewRemoteClient builds the JSON wrapper shared by every records API
// resource. A nil limiter disables outbound throttling.
func NewRemoteClient(baseUrl string, timeout time.Duration, limiter *rate.Limiter, logger *zap.Logger) contracts.RemoteClient {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &remoteClient{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    limiter,
		Log:        logger,
	}
}

func (c *remoteClient) GetData(ctx context.Context, session models.AuthSession, resource string, query map[string]string, result interface{}) error {
	return c.do(ctx, session, constvars.MethodGet, resource, query, nil, result)
}

func (c *remoteClient) CreateData(ctx context.Context, session models.AuthSession, resource string, body interface{}, result interface{}) error {
	return c.do(ctx, session, constvars.MethodPost, resource, nil, body, result)
}

func (c *remoteClient) UpdateData(ctx context.Context, session models.AuthSession, resource string, body interface{}, result interface{}) error {
	return c.do(ctx, session, constvars.MethodPut, resource, nil, body, result)
}

func (c *remoteClient) do(ctx context.Context, session models.AuthSession, method, resource string, query map[string]string, body interface{}, result interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	endpoint := c.BaseUrl + resource
	if len(query) > 0 {
		values := url.Values{}
		for key, value := range query {
			values.Set(key, value)
		}
		endpoint += "?" + values.Encode()
	}
	c.Log.Debug("remoteClient.do called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, method),
		zap.String(constvars.LoggingRemoteURLKey, endpoint),
	)

	if err := c.Limiter.Wait(ctx); err != nil {
		c.Log.Error("remoteClient.do error waiting for rate limiter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrRemoteRateLimit(err)
	}

	var requestBody io.Reader
	if body != nil {
		requestJSON, err := json.Marshal(body)
		if err != nil {
			c.Log.Error("remoteClient.do error marshaling JSON",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return exceptions.ErrCannotMarshalJSON(err)
		}
		requestBody = bytes.NewReader(requestJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, requestBody)
	if err != nil {
		c.Log.Error("remoteClient.do error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	if session.Token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+session.Token)
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("remoteClient.do error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRemoteURLKey, endpoint),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("remoteClient.do error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrDecodeResponse(err, resource)
	}

	var envelope responses.ApiEnvelope[json.RawMessage]
	decodeErr := json.Unmarshal(bodyBytes, &envelope)

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		message := http.StatusText(resp.StatusCode)
		if decodeErr == nil {
			if payloadMessage, ok := envelope.ErrorMessage(); ok {
				message = payloadMessage
			} else if envelope.Message != "" {
				message = envelope.Message
			}
		}
		c.Log.Error("remoteClient.do remote API returned non-success status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRemoteURLKey, endpoint),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String("remote_message", message),
		)
		return exceptions.ErrRemoteAPIStatus(errors.New(message), clientStatus(resp.StatusCode), resource, resp.StatusCode)
	}

	if decodeErr != nil {
		c.Log.Error("remoteClient.do error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(decodeErr),
		)
		return exceptions.ErrDecodeResponse(decodeErr, resource)
	}

	if payloadMessage, ok := envelope.ErrorMessage(); ok {
		c.Log.Error("remoteClient.do remote API returned error payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRemoteURLKey, endpoint),
			zap.String("remote_message", payloadMessage),
		)
		return exceptions.ErrRemoteAPIPayload(errors.New(payloadMessage), resource)
	}

	if result != nil && len(envelope.ResponseObject) > 0 && string(envelope.ResponseObject) != "null" {
		if err := json.Unmarshal(envelope.ResponseObject, result); err != nil {
			c.Log.Error("remoteClient.do error decoding responseObject",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return exceptions.ErrDecodeResponse(err, resource)
		}
	}

	c.Log.Debug("remoteClient.do succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.Int(constvars.LoggingResponseLengthKey, len(bodyBytes)),
	)
	return nil
}

// clientStatus keeps remote client errors visible to the caller and reports
// everything else as a bad gateway.
func clientStatus(remoteStatus int) int {
	if remoteStatus >= constvars.StatusBadRequest && remoteStatus < constvars.StatusInternalServerError {
		return remoteStatus
	}
	return constvars.StatusBadGateway
}
