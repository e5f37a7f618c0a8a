package types

// ColorProfile summarizes the sampled pixels of a meal photo. Bucket
// fields hold the percentage of sampled pixels assigned to that bucket,
// so the nine values sum to 100.
type ColorProfile struct {
	White        float64 `json:"white"`
	Cream        float64 `json:"cream"`
	Beige        float64 `json:"beige"`
	Green        float64 `json:"green"`
	Orange       float64 `json:"orange"`
	Red          float64 `json:"red"`
	Yellow       float64 `json:"yellow"`
	Brown        float64 `json:"brown"`
	Unclassified float64 `json:"unclassified"`
	// Brightness is the mean of (R+G+B)/3 over the sampled pixels, 0-255.
	Brightness float64 `json:"brightness"`
	// AspectRatio is width divided by height of the source image.
	AspectRatio float64 `json:"aspect_ratio"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}

// Portion is an estimated serving for a recognized food.
type Portion struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// RecognitionCandidate is a single food label proposed for an image.
type RecognitionCandidate struct {
	Name             string  `json:"name"`
	Confidence       float64 `json:"confidence"`
	EstimatedPortion Portion `json:"estimated_portion"`
}

// RecognitionResult is the outcome of one recognition strategy.
type RecognitionResult struct {
	Foods    []RecognitionCandidate `json:"foods"`
	Provider string                 `json:"provider"`
}

// ImageInput carries an image into the recognition pipeline. Either Path
// or Data must be set; Filename is the client-supplied name used for
// keyword hints.
type ImageInput struct {
	Path     string
	Data     []byte
	Filename string
}
