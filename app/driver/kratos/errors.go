package kratos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	kratosclient "github.com/ory/kratos-client-go"

	"pairing-service/app/domain"
)

// transformKratosError transforms Kratos API errors to domain auth errors.
func (c *Client) transformKratosError(err error, httpResp *http.Response, operation string) error {
	c.logger.Warn("kratos request failed",
		"operation", operation,
		"http_status", getHTTPStatus(httpResp),
		"error", err)

	if kratosErr, ok := err.(*kratosclient.GenericOpenAPIError); ok {
		if classified := classifyErrorBody(kratosErr.Body()); classified != nil {
			return classified
		}
	}

	if httpResp != nil {
		return classifyHTTPStatus(httpResp.StatusCode, operation, err)
	}

	return domain.NewAuthError(domain.ErrCodeInternal, fmt.Sprintf("identity provider %s failed", operation), err)
}

// classifyErrorBody pulls the human-readable messages out of a Kratos error
// response and maps them to auth error codes. Flow responses carry their
// messages under ui.messages and ui.nodes[].messages.
func classifyErrorBody(body []byte) error {
	var resp map[string]interface{}
	if jsonErr := json.Unmarshal(body, &resp); jsonErr != nil {
		return classifyMessage(string(body))
	}

	if ui, ok := resp["ui"].(map[string]interface{}); ok {
		for _, text := range uiMessages(ui) {
			if err := classifyMessage(text); err != nil {
				return err
			}
		}
	}
	if message, ok := resp["message"].(string); ok {
		return classifyMessage(message)
	}
	if reason, ok := resp["reason"].(string); ok {
		return classifyMessage(reason)
	}
	if errorObj, ok := resp["error"].(map[string]interface{}); ok {
		if message, ok := errorObj["message"].(string); ok {
			return classifyMessage(message)
		}
	}
	return nil
}

// uiMessages collects message texts from a flow's ui object, both the
// flow-level messages and the per-field node messages.
func uiMessages(ui map[string]interface{}) []string {
	var texts []string
	collect := func(raw interface{}) {
		messages, ok := raw.([]interface{})
		if !ok {
			return
		}
		for _, msg := range messages {
			msgMap, ok := msg.(map[string]interface{})
			if !ok {
				continue
			}
			if text, ok := msgMap["text"].(string); ok {
				texts = append(texts, text)
			}
		}
	}

	collect(ui["messages"])
	if nodes, ok := ui["nodes"].([]interface{}); ok {
		for _, node := range nodes {
			if nodeMap, ok := node.(map[string]interface{}); ok {
				collect(nodeMap["messages"])
			}
		}
	}
	return texts
}

// classifyMessage maps a Kratos message to an auth error, nil when the
// message carries no recognizable rejection.
func classifyMessage(message string) error {
	lower := strings.ToLower(message)

	if containsAny(lower, []string{"invalid email", "email format", "email is not valid", "is not valid \"email\""}) {
		return domain.NewAuthError(domain.ErrCodeMalformedEmail, "Invalid email address", nil)
	}

	if containsAny(lower, []string{"credentials are invalid", "invalid credentials", "wrong password", "authentication failed"}) {
		return domain.NewAuthError(domain.ErrCodeInvalidCredentials, "Invalid email or password", nil)
	}

	if containsAny(lower, []string{"already exists", "already registered", "exists already", "duplicate"}) {
		return domain.NewAuthError(domain.ErrCodeInvalidCredentials, "An account with this email already exists", nil)
	}

	if containsAny(lower, []string{"account is disabled", "account has been deactivated", "identity is inactive"}) {
		return domain.NewAuthError(domain.ErrCodeAccountDisabled, "This account has been disabled", nil)
	}

	if containsAny(lower, []string{"too many requests", "rate limit"}) {
		return domain.NewAuthError(domain.ErrCodeRateLimited, "Too many attempts, try again later", nil)
	}

	if containsAny(lower, []string{"password policy", "password too weak", "password must", "similar to", "found in data breaches"}) {
		return domain.NewAuthError(domain.ErrCodeInvalidCredentials, "Password does not meet security requirements", nil)
	}

	return nil
}

// classifyHTTPStatus maps an HTTP status to an auth error when the body gave
// nothing to classify.
func classifyHTTPStatus(statusCode int, operation string, originalErr error) error {
	switch statusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewAuthError(domain.ErrCodeInvalidCredentials, "Invalid email or password", originalErr)
	case http.StatusTooManyRequests:
		return domain.NewAuthError(domain.ErrCodeRateLimited, "Too many attempts, try again later", originalErr)
	default:
		return domain.NewAuthError(domain.ErrCodeInternal,
			fmt.Sprintf("identity provider %s failed with status %d", operation, statusCode), originalErr)
	}
}

func containsAny(text string, substrings []string) bool {
	for _, substring := range substrings {
		if strings.Contains(text, substring) {
			return true
		}
	}
	return false
}

func getHTTPStatus(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
