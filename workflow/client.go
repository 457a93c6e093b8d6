package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"goldloan/models"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is the HTTP client for the appraisal backend. It serves the
// identification workflow (recognition, session, registration endpoints)
// and the tenant state store (directory endpoints).
type Client struct {
	http *resty.Client
}

// NewClient returns a Client for the backend at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second),
	}
}

// envelope is the standard {status, message, data} response wrapper used by
// the directory endpoints
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(resp *resty.Response, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if !env.Status {
		return fmt.Errorf("request failed: %s", env.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("malformed response data: %w", err)
	}
	return nil
}

// ListBanks fetches all banks
func (c *Client) ListBanks(ctx context.Context) ([]models.Bank, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/bank")
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}

	var banks []models.Bank
	if err := decodeEnvelope(resp, &banks); err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	return banks, nil
}

// ListBranches fetches all branches of a bank
func (c *Client) ListBranches(ctx context.Context, bankID uint) ([]models.Branch, error) {
	resp, err := c.http.R().SetContext(ctx).
		Get(fmt.Sprintf("/api/branch/bank/%d", bankID))
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var branches []models.Branch
	if err := decodeEnvelope(resp, &branches); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

// ListUsers fetches the tenant users of a bank, optionally narrowed to a
// branch
func (c *Client) ListUsers(ctx context.Context, bankID uint, branchID *uint) ([]models.TenantUser, error) {
	path := fmt.Sprintf("/api/tenant/banks/%d/users", bankID)
	if branchID != nil {
		path = fmt.Sprintf("/api/tenant/branches/%d/users", *branchID)
	}

	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var users []models.TenantUser
	if err := decodeEnvelope(resp, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// TenantContext is the backend-resolved scope for a bank/branch/user
// selection
type TenantContext struct {
	BankID       *uint                       `json:"bank_id"`
	BranchID     *uint                       `json:"branch_id"`
	TenantUserID *uint                       `json:"tenant_user_id"`
	BankName     string                      `json:"bank_name"`
	BranchName   string                      `json:"branch_name"`
	UserFullName string                      `json:"user_full_name"`
	UserRole     models.Role                 `json:"user_role"`
	Permissions  *models.Permissions         `json:"permissions"`
	Settings     *models.TenantSettings      `json:"tenant_settings"`
	Config       *models.SystemConfiguration `json:"system_configuration"`
}

// ResolveContext resolves the full scoped tenant context for a selection
func (c *Client) ResolveContext(ctx context.Context, bankID, branchID, userID uint) (*TenantContext, error) {
	req := c.http.R().SetContext(ctx)
	if bankID > 0 {
		req.SetQueryParam("bank_id", fmt.Sprintf("%d", bankID))
	}
	if branchID > 0 {
		req.SetQueryParam("branch_id", fmt.Sprintf("%d", branchID))
	}
	if userID > 0 {
		req.SetQueryParam("user_id", fmt.Sprintf("%d", userID))
	}

	resp, err := req.Get("/api/tenant/resolve-context")
	if err != nil {
		return nil, fmt.Errorf("resolve context: %w", err)
	}

	var tenantCtx TenantContext
	if err := decodeEnvelope(resp, &tenantCtx); err != nil {
		return nil, fmt.Errorf("resolve context: %w", err)
	}
	return &tenantCtx, nil
}

// Recognize submits a captured image to the recognition endpoint and maps
// the response to a tagged outcome. Transport errors map to OutcomeFailed.
func (c *Client) Recognize(ctx context.Context, image string) Outcome {
	resp, err := c.http.R().SetContext(ctx).
		SetMultipartFormData(map[string]string{"image": image}).
		Post("/api/face/recognize")
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("recognition request: %w", err)}
	}

	return mapRecognitionResponse(resp.StatusCode(), resp.Body())
}

// CreateSession opens a new appraisal session and returns its opaque id
func (c *Client) CreateSession(ctx context.Context) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Post("/api/session/create")
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", fmt.Errorf("create session failed with status %d", resp.StatusCode())
	}

	var result struct {
		SessionID string `json:"session_id"`
		Success   bool   `json:"success"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("create session: malformed response: %w", err)
	}
	if result.SessionID == "" {
		return "", fmt.Errorf("create session: empty session id (%s)", result.Message)
	}
	return result.SessionID, nil
}

// AppraiserAttachment is the identity payload bound to a session on
// confirmation
type AppraiserAttachment struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Image     string `json:"image"`
	Timestamp string `json:"timestamp"`
	Photo     string `json:"photo"`
}

// AttachAppraiser binds appraiser identity and the captured image to an
// existing session
func (c *Client) AttachAppraiser(ctx context.Context, sessionID string, attachment AppraiserAttachment) error {
	resp, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(attachment).
		Post(fmt.Sprintf("/api/session/%s/appraiser", sessionID))
	if err != nil {
		return fmt.Errorf("attach appraiser: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return fmt.Errorf("attach appraiser failed with status %d", resp.StatusCode())
	}
	return nil
}

// Registration is the payload for the new-appraiser registration handoff
type Registration struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Image     string `json:"image"`
	Timestamp string `json:"timestamp"`
	Bank      string `json:"bank"`
	Branch    string `json:"branch"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// RegisterAppraiser hands a captured image to the new-appraiser
// registration endpoint
func (c *Client) RegisterAppraiser(ctx context.Context, registration Registration) error {
	resp, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(registration).
		Post("/api/appraiser")
	if err != nil {
		return fmt.Errorf("register appraiser: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return fmt.Errorf("register appraiser failed with status %d", resp.StatusCode())
	}
	return nil
}
