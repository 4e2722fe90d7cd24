package compliance

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// AssetMetadata is the persisted record for one generated asset. It is a
// plain structure for the collaborator to serialize.
type AssetMetadata struct {
	AssetID     string `json:"asset_id"`
	ProductName string `json:"product_name"`
	CampaignID  string `json:"campaign_id"`
	AspectRatio string `json:"aspect_ratio"`

	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`

	HasText        bool     `json:"has_text"`
	TextContent    string   `json:"text_content,omitempty"`
	DominantColors []string `json:"dominant_colors"`

	ComplianceResult *Result `json:"compliance_result,omitempty"`

	CreatedAt   time.Time `json:"created_at"`
	ValidatedAt time.Time `json:"validated_at"`
}

// dominantColorCount is how many dominant colors are recorded per asset.
const dominantColorCount = 5

// CreateAssetMetadata builds the full metadata record for an asset,
// including dominant colors and an embedded compliance run.
func (c *Checker) CreateAssetMetadata(img image.Image, productName, campaignID, aspectRatio, text string) *AssetMetadata {
	now := time.Now().UTC()
	meta := &AssetMetadata{
		AssetID:        uuid.NewString(),
		ProductName:    productName,
		CampaignID:     campaignID,
		AspectRatio:    aspectRatio,
		Width:          img.Bounds().Dx(),
		Height:         img.Bounds().Dy(),
		Format:         "PNG",
		HasText:        text != "",
		TextContent:    text,
		DominantColors: c.colors.DominantColors(img, dominantColorCount),
		CreatedAt:      now,
	}

	info := &AssetInfo{AspectRatio: aspectRatio}
	meta.ComplianceResult = c.ValidateAsset(img, text, info)
	meta.ValidatedAt = time.Now().UTC()

	return meta
}
