package transport

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/douhashi/labeler/internal/logger"
)

const bodyPreviewLimit = 200

// LoggingRoundTripper はHTTPリクエスト/レスポンスをdebugレベルでログ出力するラウンドトリッパー
type LoggingRoundTripper struct {
	Base   http.RoundTripper
	Logger logger.Logger
	// Prefix はログメッセージの接頭辞 (例: "linear_api")
	Prefix string
}

// NewLoggingRoundTripper は新しいLoggingRoundTripperを作成する
func NewLoggingRoundTripper(base http.RoundTripper, log logger.Logger, prefix string) *LoggingRoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &LoggingRoundTripper{Base: base, Logger: log, Prefix: prefix}
}

// RoundTrip はHTTPリクエストを実行し、リクエスト/レスポンスの詳細をログ出力する
func (rt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	rt.logRequest(req)

	resp, err := rt.Base.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		rt.Logger.Error(rt.Prefix+"_error",
			"method", req.Method,
			"url", req.URL.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	rt.logResponse(resp, duration)

	return resp, nil
}

// logRequest はHTTPリクエストの詳細をログ出力する
func (rt *LoggingRoundTripper) logRequest(req *http.Request) {
	fields := []interface{}{
		"method", req.Method,
		"url", req.URL.String(),
	}

	// 値そのものはロガー側でもマスクされるため、スキームだけを残す
	if auth := req.Header.Get("Authorization"); auth != "" {
		fields = append(fields, "scheme", AuthScheme(auth))
	}

	if ua := req.Header.Get("User-Agent"); ua != "" {
		fields = append(fields, "user_agent", ua)
	}

	rt.Logger.Debug(rt.Prefix+"_request", fields...)
}

// logResponse はHTTPレスポンスの詳細をログ出力する
func (rt *LoggingRoundTripper) logResponse(resp *http.Response, duration time.Duration) {
	fields := []interface{}{
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	}

	if resp.Body != nil {
		bodyBytes, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			rt.Logger.Error("failed_to_read_response_body", "error", err.Error())
			resp.Body = io.NopCloser(bytes.NewReader(nil))
		} else {
			// 呼び出し側が読めるようにボディを再設定
			resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))

			preview := string(bodyBytes)
			if len(preview) > bodyPreviewLimit {
				preview = preview[:bodyPreviewLimit] + "..."
			}
			fields = append(fields, "body_preview", preview)
		}
	}

	rt.Logger.Debug(rt.Prefix+"_response", fields...)
}

// AuthScheme はAuthorizationヘッダーのスキームを返す。スキームのない生のキーは"raw"
func AuthScheme(auth string) string {
	if auth == "" {
		return ""
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 {
		return parts[0]
	}
	return "raw"
}
