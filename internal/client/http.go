package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/logger"

	"go.uber.org/zap"
)

// Service names used in connection hints
const (
	ServiceNode   = "evtd"
	ServiceWallet = "evtwd"
)

// httpClient 对 evtd / evtwd HTTP 接口的一次 POST 调用
type httpClient struct {
	service string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func newHTTPClient(service, baseURL string, timeout time.Duration, log *zap.Logger) *httpClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.Or(log),
	}
}

// call 发送 body (可为 nil、json.RawMessage 或任意可序列化值)，把结果解码到 out。
// out 为 *json.RawMessage 时保留原始响应。
func (c *httpClient) call(ctx context.Context, path string, body, out interface{}) error {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		payload = b
	default:
		var err error
		if payload, err = json.Marshal(b); err != nil {
			return errno.ErrParse.Wrap(err, "encode request for %s", path)
		}
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return c.connectionError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("request", zap.String("service", c.service), zap.String("url", url), zap.Int("bytes", len(payload)))

	resp, err := c.http.Do(req)
	if err != nil {
		return c.connectionError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.connectionError(err)
	}

	c.log.Debug("response", zap.String("service", c.service), zap.String("url", url), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.remoteError(path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errno.ErrParse.Wrap(err, "decode %s response from %s", path, c.service)
	}
	return nil
}

func (c *httpClient) connectionError(cause error) error {
	err := errno.ErrConnection.Wrap(cause, "%s", c.baseURL)
	err.Hint = fmt.Sprintf("Failed to connect to %s at %s; is %s running?", c.service, c.baseURL, c.service)
	return err
}

func (c *httpClient) remoteError(path string, status int, data []byte) error {
	var remote types.ErrorResponse
	if jsonErr := json.Unmarshal(data, &remote); jsonErr != nil || (remote.Err.Name == "" && remote.Message == "") {
		err := errno.ErrRemoteRejection.New("%s %s returned %d: %s", c.service, path, status, strings.TrimSpace(string(data)))
		return err
	}
	err := errno.ErrRemoteRejection.New("%s", remote.Summary())
	err.Remote = &remote
	return err
}

// IsConnection 判断错误是否为连接失败
func IsConnection(err error) bool {
	return errors.Is(err, errno.ErrConnection)
}
