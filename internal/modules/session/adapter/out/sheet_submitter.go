package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"abaterm/internal/modules/session/domain"
	sessionout "abaterm/internal/modules/session/port/out"
	apperrors "abaterm/internal/platform/errors"
)

const submitTimeout = 30 * time.Second

// Messages surfaced to the therapist. Spanish, matching the rest of the UI.
const (
	msgEndpointUnset = "Falta configurar la URL del Script"
	msgPermissions   = "Error de permisos: el Script devolvió HTML. Despliega la aplicación web como \"Cualquier persona\" (Anyone)."
	msgConnectivity  = "Error de conexión. Revisa tu internet."
	msgUnknownReject = "Error desconocido en el script"
)

// savePayload is the envelope the sheet script expects.
type savePayload struct {
	RequestType string         `json:"requestType"`
	Payload     domain.Session `json:"payload"`
}

// saveReply is the narrow, versioned reply contract. The script's current
// revision answers {"success":true}; older revisions used result/error pairs,
// which decode here as a rejection. Anything that is not an explicit success
// fails closed.
type saveReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SheetSubmitter posts completed sessions to the Apps Script endpoint.
type SheetSubmitter struct {
	endpointURL string
	configured  bool
	client      *http.Client
}

func NewSheetSubmitter(endpointURL string, configured bool) sessionout.Submitter {
	return &SheetSubmitter{
		endpointURL: endpointURL,
		configured:  configured,
		client:      &http.Client{Timeout: submitTimeout},
	}
}

// Submit serializes the session and posts it. No failure escapes as an
// error: the result always carries a Succeeded flag and a message the UI can
// show as-is.
func (s *SheetSubmitter) Submit(ctx context.Context, session domain.Session) sessionout.SubmitResult {
	if !s.configured {
		return sessionout.SubmitResult{Succeeded: false, Message: msgEndpointUnset, Err: apperrors.ErrEndpointUnset}
	}

	body, err := json.Marshal(savePayload{RequestType: "SAVE_SESSION", Payload: session})
	if err != nil {
		return sessionout.SubmitResult{Succeeded: false, Message: fmt.Sprintf("Error interno: %v", err), Err: fmt.Errorf("%w: %v", apperrors.ErrTransport, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpointURL, bytes.NewReader(body))
	if err != nil {
		return sessionout.SubmitResult{Succeeded: false, Message: msgConnectivity, Err: fmt.Errorf("%w: %v", apperrors.ErrTransport, err)}
	}
	// text/plain keeps the request "simple" so the Apps Script endpoint is
	// reached without a CORS preflight.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return sessionout.SubmitResult{Succeeded: false, Message: msgConnectivity, Err: fmt.Errorf("%w: %v", apperrors.ErrTransport, err)}
	}
	defer resp.Body.Close()

	// An HTML reply is Google's login/permission page, whatever the status.
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return sessionout.SubmitResult{Succeeded: false, Message: msgPermissions, Err: apperrors.ErrPermissionDenied}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return sessionout.SubmitResult{Succeeded: false, Message: fmt.Sprintf("Error del servidor: %d", resp.StatusCode), Err: fmt.Errorf("%w: status %d", apperrors.ErrTransport, resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return sessionout.SubmitResult{Succeeded: false, Message: msgConnectivity, Err: fmt.Errorf("%w: %v", apperrors.ErrTransport, err)}
	}
	var reply saveReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return sessionout.SubmitResult{Succeeded: false, Message: msgUnknownReject, Err: apperrors.ErrEndpointRejected}
	}
	if reply.Success {
		return sessionout.SubmitResult{Succeeded: true}
	}

	message := reply.Message
	if message == "" {
		message = reply.Error
	}
	if message == "" {
		message = msgUnknownReject
	}
	return sessionout.SubmitResult{Succeeded: false, Message: message, Err: apperrors.ErrEndpointRejected}
}
