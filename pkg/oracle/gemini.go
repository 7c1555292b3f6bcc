package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Gemini is an Oracle backed by Google's Gemini API in JSON mode
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed oracle. The API key is required; an
// empty model falls back to a sensible default.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Propose sends one request to Gemini and parses the JSON reply. A single
// attempt: transport and conformance failures both wrap ErrOracle and are
// surfaced to the caller, never downgraded to an empty proposal.
func (g *Gemini) Propose(ctx context.Context, req *Request) (*Response, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("%w: build prompt: %v", ErrOracle, err)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generate: %v", ErrOracle, err)
	}

	return ParseResponse(result.Text())
}

func buildPrompt(req *Request) (string, error) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a staff shift planner. The input below describes one store day: ")
	b.WriteString("under-staffed time ranges (gap_ranges, with how many more staff each needs), ")
	b.WriteString("the staff eligible to work (candidates, with the only window each may work), ")
	b.WriteString("and the shifts already scheduled (existing_shifts).\n\n")
	b.WriteString("Propose shifts that fill the gaps. Obey the constraints in order; the first two are absolute.\n\n")
	b.WriteString("Input:\n")
	b.Write(payload)
	b.WriteString("\n\nRespond with a single JSON object, no prose, in exactly this shape:\n")
	b.WriteString(`{"proposed_shifts":[{"staff_id":"","staff_name":"","start_time":"HH:MM","end_time":"HH:MM","reason":""}],`)
	b.WriteString(`"unfilled_slots":[{"time_range":"HH:MM-HH:MM","reason":""}],`)
	b.WriteString(`"summary":{"total_proposed":0,"estimated_coverage":0,"notes":""}}`)
	return b.String(), nil
}

// ParseResponse decodes an oracle reply. Markdown code fences are tolerated;
// anything that does not decode into the Response contract is an oracle
// failure, not an empty result.
func ParseResponse(raw string) (*Response, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrOracle)
	}

	var resp Response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrOracle, err)
	}
	return &resp, nil
}
