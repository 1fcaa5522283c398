package entity

import (
	"fmt"
	"github.com/gosimple/slug"
	"strings"
)

type Asset struct {
	TokenId       string        `json:"token_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	ImageUrl      string        `json:"image_url"`
	AssetContract AssetContract `json:"asset_contract"`
	Collection    Collection    `json:"collection"`
}

type AssetContract struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type Collection struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (a Asset) Slug() string {
	return CreateAssetSlug(a.TokenId, a.AssetContract.Address)
}

func (a Asset) Matches(tokenId, contractAddr string) bool {
	return a.TokenId == tokenId && strings.EqualFold(a.AssetContract.Address, contractAddr)
}

func CreateAssetSlug(tokenId, contract string) string {
	return slug.Make(fmt.Sprintf("asset-%s-%s", tokenId, strings.ToLower(contract)))
}
