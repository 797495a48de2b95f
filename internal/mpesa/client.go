package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/becca-afk/first-class-perfume/pkg/config"
	"github.com/becca-afk/first-class-perfume/pkg/logging"
)

const (
	tokenPath = "/oauth/v1/generate?grant_type=client_credentials"
	stkPath   = "/mpesa/stkpush/v1/processrequest"
)

var ErrAuth = errors.New("mpesa auth")

// Client talks to the Daraja sandbox/production API. All prompt failures are
// absorbed into PromptResult values; only Authenticate returns an error.
type Client struct {
	cfg  config.MpesaConfig
	http *http.Client
	now  func() time.Time
}

func NewClient(cfg config.MpesaConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		now:  time.Now,
	}
}

// Configured reports whether live provider credentials are present. Without
// them every prompt degrades to simulation mode.
func (c *Client) Configured() bool {
	return c.cfg.ConsumerKey != "" && c.cfg.ConsumerSecret != "" &&
		c.cfg.ShortCode != "" && c.cfg.Passkey != ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// Authenticate exchanges the consumer key/secret for a short-lived bearer
// token via the OAuth client-credentials endpoint.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+tokenPath, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d: %s", ErrAuth, resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("%w: parse token response: %v", ErrAuth, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuth)
	}
	return tok.AccessToken, nil
}

type stkRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type PromptResult struct {
	Accepted          bool   `json:"accepted"`
	Message           string `json:"message,omitempty"`
	ErrorMessage      string `json:"error_message,omitempty"`
	Simulation        bool   `json:"simulation,omitempty"`
	MerchantRequestID string `json:"merchant_request_id,omitempty"`
	CheckoutRequestID string `json:"checkout_request_id,omitempty"`
}

// RequestPrompt pushes an STK payment prompt to the payer's device. The
// outcome is always a decidable result value: provider rejections come back
// as accepted=false, while transport or credential failures fall back to a
// synthetic success flagged simulation=true so the rest of the flow stays
// exercisable without live credentials.
func (c *Client) RequestPrompt(ctx context.Context, phone string, amount float64, accountRef string) PromptResult {
	l := logging.FromContext(ctx)

	if !c.Configured() {
		l.Warn("mpesa credentials missing, simulating prompt")
		return c.simulated()
	}

	token, err := c.Authenticate(ctx)
	if err != nil {
		l.Error("mpesa authenticate failed, simulating prompt", "error", err)
		return c.simulated()
	}

	timestamp := c.now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString(
		[]byte(c.cfg.ShortCode + c.cfg.Passkey + timestamp))

	if accountRef == "" {
		accountRef = c.cfg.AccountRef
	}
	payload := stkRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            int64(math.Round(amount)),
		PartyA:            NormalizePhone(phone),
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       NormalizePhone(phone),
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  accountRef,
		TransactionDesc:   c.cfg.TransactionDsc,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		l.Error("mpesa marshal stk payload", "error", err)
		return c.simulated()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+stkPath, bytes.NewReader(body))
	if err != nil {
		l.Error("mpesa build stk request", "error", err)
		return c.simulated()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		l.Error("mpesa stk push transport error, simulating prompt", "error", err)
		return c.simulated()
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var stk stkResponse
	if err := json.Unmarshal(respBody, &stk); err != nil {
		l.Error("mpesa stk push bad response, simulating prompt",
			"status", resp.StatusCode, "body", string(respBody))
		return c.simulated()
	}

	// Safaricom reports success as ResponseCode "0".
	if stk.ResponseCode != "0" {
		msg := stk.CustomerMessage
		if msg == "" {
			msg = "Failed"
		}
		l.Warn("mpesa stk push rejected",
			"response_code", stk.ResponseCode, "description", stk.ResponseDescription)
		return PromptResult{Accepted: false, ErrorMessage: msg}
	}

	l.Info("mpesa stk push accepted",
		"merchant_request_id", stk.MerchantRequestID,
		"checkout_request_id", stk.CheckoutRequestID)
	return PromptResult{
		Accepted:          true,
		Message:           "Prompt sent",
		MerchantRequestID: stk.MerchantRequestID,
		CheckoutRequestID: stk.CheckoutRequestID,
	}
}

func (c *Client) simulated() PromptResult {
	return PromptResult{
		Accepted:          true,
		Message:           "SIMULATION: Prompt Sent (Check Server Logs for Setup)",
		Simulation:        true,
		CheckoutRequestID: "sim-" + uuid.NewString(),
	}
}

// CallbackEnvelope is the asynchronous delivery-result payload the provider
// posts back after a prompt resolves on the payer's device.
type CallbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  struct {
		Item []CallbackItem `json:"Item"`
	} `json:"CallbackMetadata"`
}

type CallbackItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

func (cb StkCallback) Succeeded() bool { return cb.ResultCode == 0 }

// ReceiptNumber extracts the MpesaReceiptNumber metadata item, the payment
// reference attached to the order as its transaction id.
func (cb StkCallback) ReceiptNumber() string {
	for _, item := range cb.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if s, ok := item.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}
