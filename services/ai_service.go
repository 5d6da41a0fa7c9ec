package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/souqna/souqna_backend/models"
	"google.golang.org/genai"
)

const defaultGenerativeModel = "gemini-2.0-flash"

// AIService wraps the Gemini API for listing image checks and recommendations
type AIService struct {
	client *genai.Client
	model  string
}

// NewAIService creates the Gemini client. Returns an error when the API key
// is missing so callers can disable the AI endpoints instead of crashing.
func NewAIService(apiKey, model string) (*AIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	if model == "" {
		model = defaultGenerativeModel
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &AIService{
		client: client,
		model:  model,
	}, nil
}

// AnalyzeListingImage asks the model whether a listing photo looks like a
// genuine product photo and what issues it has.
func (s *AIService) AnalyzeListingImage(ctx context.Context, photoDataURI string) (*models.ImageAnalysis, error) {
	mimeType, imageBytes, err := DecodeDataURI(photoDataURI)
	if err != nil {
		return nil, err
	}

	prompt := `You are reviewing a photo submitted for a classifieds listing.
Decide whether the image looks like an authentic photo of a real item for sale
(not a stock photo, screenshot, watermarked image, or unrelated picture).
Respond with JSON only, matching this shape:
{"isAuthentic": boolean, "issues": ["short description of each problem found"]}
Leave issues empty when the photo is fine.`

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(imageBytes, mimeType),
		}, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini image analysis failed: %w", err)
	}

	var analysis models.ImageAnalysis
	if err := json.Unmarshal([]byte(result.Text()), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return &analysis, nil
}

// RecommendListings picks listing IDs from the candidate set that best match
// the user's viewing history. Returns the chosen IDs in ranked order.
func (s *AIService) RecommendListings(ctx context.Context, viewingHistory []string, candidates []models.Listing) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	var catalog strings.Builder
	for _, listing := range candidates {
		fmt.Fprintf(&catalog, "- id=%s title=%q category=%q price=%.2f %s\n",
			listing.ID.Hex(), listing.Title, listing.Category.Name, listing.Price, listing.Currency)
	}

	prompt := fmt.Sprintf(`You are a recommendation engine for a classifieds marketplace.
The user recently viewed listings with these titles:
%s

Available listings:
%s
Pick up to 5 listing ids from the available listings that this user is most
likely to be interested in, best match first. Respond with JSON only:
{"recommendedIds": ["id", ...]}`,
		strings.Join(viewingHistory, "\n"), catalog.String())

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini recommendation failed: %w", err)
	}

	var parsed struct {
		RecommendedIDs []string `json:"recommendedIds"`
	}
	if err := json.Unmarshal([]byte(result.Text()), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation response: %w", err)
	}

	return parsed.RecommendedIDs, nil
}

// DecodeDataURI splits a "data:<mime>;base64,<payload>" URI into its parts
func DecodeDataURI(dataURI string) (string, []byte, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, errors.New("photo must be a data URI")
	}

	commaIdx := strings.Index(dataURI, ",")
	if commaIdx < 0 {
		return "", nil, errors.New("malformed data URI")
	}

	meta := dataURI[len("data:"):commaIdx]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, errors.New("data URI must be base64 encoded")
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		return "", nil, errors.New("data URI is missing a content type")
	}

	payload, err := base64.StdEncoding.DecodeString(dataURI[commaIdx+1:])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 image data: %w", err)
	}

	return mimeType, payload, nil
}
