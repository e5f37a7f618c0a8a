package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

const defaultUSDABaseURL = "https://api.nal.usda.gov/fdc/v1"

// Nutrient names as reported by FoodData Central search results.
const (
	nutrientEnergy  = "Energy"
	nutrientProtein = "Protein"
	nutrientCarbs   = "Carbohydrate, by difference"
	nutrientFats    = "Total lipid (fat)"
)

// USDAClient looks up foods in the USDA FoodData Central search API.
// Hits are cached per normalized food name for a day when a Redis
// client is provided.
type USDAClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *redis.Client
}

// NewUSDAClient creates a client. baseURL defaults to the public
// FoodData Central endpoint; cache may be nil to disable caching.
func NewUSDAClient(apiKey, baseURL string, cache *redis.Client) *USDAClient {
	if baseURL == "" {
		baseURL = defaultUSDABaseURL
	}
	return &USDAClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
	}
}

// usdaFood holds a search hit reduced to per-100g values. This is the
// shape stored in the cache.
type usdaFood struct {
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
}

type usdaSearchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Lookup searches for a food and scales the first hit to the requested
// quantity. It returns an error when the API is unreachable, responds
// with a non-200 status or has no match for the name.
func (u *USDAClient) Lookup(ctx context.Context, name string, quantity float64, unit string) (types.NutritionRecord, error) {
	food, err := u.search(ctx, name)
	if err != nil {
		return types.NutritionRecord{}, err
	}

	if quantity <= 0 {
		quantity = 100
	}
	if unit == "" {
		unit = "g"
	}
	multiplier := quantity / 100

	foodName := food.Description
	if foodName == "" {
		foodName = name
	}

	return types.NutritionRecord{
		FoodName: foodName,
		Quantity: quantity,
		Unit:     unit,
		Calories: round1(food.Calories * multiplier),
		Protein:  round1(food.Protein * multiplier),
		Carbs:    round1(food.Carbs * multiplier),
		Fats:     round1(food.Fats * multiplier),
		Source:   types.SourceExternalAPI,
	}, nil
}

func (u *USDAClient) search(ctx context.Context, name string) (*usdaFood, error) {
	cacheKey := fmt.Sprintf("usda:food:%s", NormalizeFoodName(name))

	if u.cache != nil {
		data, err := u.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var food usdaFood
			if err := json.Unmarshal(data, &food); err == nil {
				return &food, nil
			}
		}
	}

	params := url.Values{}
	params.Set("api_key", u.apiKey)
	params.Set("query", name)
	params.Set("pageSize", "1")
	params.Add("dataType", "Foundation")
	params.Add("dataType", "SR Legacy")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/foods/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition API request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nutrition API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutrition API returned status %d", resp.StatusCode)
	}

	var result usdaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode nutrition API response: %w", err)
	}

	if len(result.Foods) == 0 {
		return nil, fmt.Errorf("no nutrition data for %q", name)
	}

	hit := result.Foods[0]
	nutrients := make(map[string]float64, len(hit.FoodNutrients))
	for _, n := range hit.FoodNutrients {
		nutrients[n.NutrientName] = n.Value
	}

	food := &usdaFood{
		Description: hit.Description,
		Calories:    nutrients[nutrientEnergy],
		Protein:     nutrients[nutrientProtein],
		Carbs:       nutrients[nutrientCarbs],
		Fats:        nutrients[nutrientFats],
	}

	if u.cache != nil {
		data, err := json.Marshal(food)
		if err == nil {
			if err := u.cache.Set(ctx, cacheKey, data, 24*time.Hour).Err(); err != nil {
				log.Printf("[USDAClient] failed to cache %s: %v", cacheKey, err)
			}
		}
	}

	return food, nil
}
