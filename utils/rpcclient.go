package utils

import (
	"fmt"
	"time"

	resty "github.com/go-resty/resty/v2"
)

type HttpClient struct {
	client   *resty.Client
	url      string
	protocol string
	host     string
	port     string
}

// NewHttpClient to get http client instance
func NewHttpClient(url string, protocol string, host string, port string) *HttpClient {
	client := resty.New().
		SetTimeout(time.Second * 60).
		SetHeader("Content-Type", "application/json")
	return &HttpClient{
		client:   client,
		url:      url,
		protocol: protocol,
		host:     host,
		port:     port,
	}
}

func buildHttpServerAddress(url string, protocol string, host string, port string) string {
	if url != "" {
		return url
	}
	return fmt.Sprintf("%s://%s:%s", protocol, host, port)
}

func (client *HttpClient) RPCCall(
	method string,
	params interface{},
	rpcResponse interface{},
) (err error) {
	rpcEndpoint := buildHttpServerAddress(
		client.url, client.protocol, client.host, client.port,
	)
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
		"id":      0,
	}

	resp, err := client.client.R().
		SetBody(payload).
		SetResult(rpcResponse).
		Post(rpcEndpoint)
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("RPC %v: response status code %v", method, resp.StatusCode())
	}
	return nil
}

func (client HttpClient) GetURL() string {
	return buildHttpServerAddress(client.url, client.protocol, client.host, client.port)
}
