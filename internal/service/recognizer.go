package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

// Provider tags recorded on recognition results.
const (
	ProviderFilenameKeyword = "filename_keyword"
	ProviderVisionAPI       = "vision_api"
	ProviderImageAnalysis   = "image_analysis"
)

const (
	visionConfidenceFloor = 0.3
	visionMaxCandidates   = 5
)

// ErrNoKeywordMatch reports that a filename contained no known food keyword.
var ErrNoKeywordMatch = errors.New("filename matched no known food keyword")

// Recognizer proposes food candidates for a meal image. Implementations
// return an error when they cannot produce candidates so the caller can
// fall through to the next strategy.
type Recognizer interface {
	Recognize(ctx context.Context, input types.ImageInput) (*types.RecognitionResult, error)
}

// KeywordRecognizer matches the uploaded filename against the food keyword
// table. It never opens the image.
type KeywordRecognizer struct {
	catalog *Catalog
}

func NewKeywordRecognizer(catalog *Catalog) *KeywordRecognizer {
	return &KeywordRecognizer{catalog: catalog}
}

func (r *KeywordRecognizer) Recognize(_ context.Context, input types.ImageInput) (*types.RecognitionResult, error) {
	label, ok := r.catalog.KeywordLabel(input.Filename)
	if !ok {
		return nil, ErrNoKeywordMatch
	}
	return &types.RecognitionResult{
		Provider: ProviderFilenameKeyword,
		Foods: []types.RecognitionCandidate{{
			Name:             label,
			Confidence:       keywordConfidence,
			EstimatedPortion: r.catalog.EstimatePortion(label),
		}},
	}, nil
}

// VisionRecognizer sends the image to an external food recognition model and
// maps the returned concepts to candidates.
type VisionRecognizer struct {
	catalog *Catalog
	apiURL  string
	apiKey  string
	client  *http.Client
}

func NewVisionRecognizer(catalog *Catalog, apiURL, apiKey string) *VisionRecognizer {
	return &VisionRecognizer{
		catalog: catalog,
		apiURL:  apiURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type visionRequest struct {
	Inputs []visionInput `json:"inputs"`
}

type visionInput struct {
	Data visionInputData `json:"data"`
}

type visionInputData struct {
	Image visionImage `json:"image"`
}

type visionImage struct {
	Base64 string `json:"base64"`
}

type visionResponse struct {
	Outputs []visionOutput `json:"outputs"`
}

type visionOutput struct {
	Data visionOutputData `json:"data"`
}

type visionOutputData struct {
	Concepts []visionConcept `json:"concepts"`
}

type visionConcept struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (r *VisionRecognizer) Recognize(ctx context.Context, input types.ImageInput) (*types.RecognitionResult, error) {
	data, err := imageBytes(input)
	if err != nil {
		return nil, err
	}

	payload := visionRequest{
		Inputs: []visionInput{{
			Data: visionInputData{
				Image: visionImage{Base64: base64.StdEncoding.EncodeToString(data)},
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call vision API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API returned status %d", resp.StatusCode)
	}

	var parsed visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode vision response: %w", err)
	}
	if len(parsed.Outputs) == 0 {
		return nil, errors.New("vision API returned no outputs")
	}

	var foods []types.RecognitionCandidate
	for _, concept := range parsed.Outputs[0].Data.Concepts {
		if concept.Value < visionConfidenceFloor {
			continue
		}
		foods = append(foods, types.RecognitionCandidate{
			Name:             concept.Name,
			Confidence:       concept.Value,
			EstimatedPortion: r.catalog.EstimatePortion(concept.Name),
		})
		if len(foods) == visionMaxCandidates {
			break
		}
	}
	if len(foods) == 0 {
		return nil, errors.New("vision API returned no usable concepts")
	}

	return &types.RecognitionResult{Provider: ProviderVisionAPI, Foods: foods}, nil
}

// HeuristicRecognizer profiles the image colors locally and classifies the
// profile. It succeeds for any decodable image.
type HeuristicRecognizer struct {
	profiler   *ColorProfiler
	classifier *HeuristicClassifier
}

func NewHeuristicRecognizer(profiler *ColorProfiler, classifier *HeuristicClassifier) *HeuristicRecognizer {
	return &HeuristicRecognizer{profiler: profiler, classifier: classifier}
}

func (r *HeuristicRecognizer) Recognize(_ context.Context, input types.ImageInput) (*types.RecognitionResult, error) {
	var (
		profile *types.ColorProfile
		err     error
	)
	if len(input.Data) > 0 {
		profile, err = r.profiler.ProfileBytes(input.Data)
	} else {
		profile, err = r.profiler.ProfileFile(input.Path)
	}
	if err != nil {
		return nil, err
	}

	foods := r.classifier.Classify(profile, input.Filename)
	return &types.RecognitionResult{Provider: ProviderImageAnalysis, Foods: foods}, nil
}

func imageBytes(input types.ImageInput) ([]byte, error) {
	if len(input.Data) > 0 {
		return input.Data, nil
	}
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}
