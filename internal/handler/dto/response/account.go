package response

import (
	"storefront-checkout/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type SpotResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

func FromSpotViews(views []queries.SpotView) ([]SpotResponse, error) {
	res := make([]SpotResponse, 0, len(views))
	if len(views) == 0 {
		return res, nil
	}
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}

type AccountResponse struct {
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Bonus    int64  `json:"bonus"`
}

func FromAccountView(v *queries.AccountView) (*AccountResponse, error) {
	var res AccountResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}
