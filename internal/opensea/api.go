package opensea

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

type Api interface {
	GetAssets(ctx context.Context, query AssetQuery) ([]entity.Asset, error)
	GetOrder(ctx context.Context, query OrderQuery) (*entity.Order, error)
	GetFulfillmentData(ctx context.Context, order entity.Order, fulfiller string) (*entity.Transaction, error)
}

type AssetQuery struct {
	Collection string
	Limit      int
}

type OrderQuery struct {
	Side                 entity.OrderSide
	TokenId              string
	AssetContractAddress string
}

type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("marketplace responded %s", e.Status)
	}
	return fmt.Sprintf("marketplace responded %s: %s", e.Status, e.Body)
}

type api struct {
	baseUrl string
	apiKey  string
	network entity.Network
	client  *retryablehttp.Client
}

func NewHttpClient(timeout, retryMax int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = retryMax
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.HTTPClient.Timeout = time.Duration(timeout) * time.Second

	return client
}

// NewApi talks to baseUrl when set, otherwise to the network's public endpoint.
func NewApi(network entity.Network, baseUrl, apiKey string, client *retryablehttp.Client) Api {
	if baseUrl == "" {
		baseUrl = network.ApiUrl()
	}

	return api{strings.TrimRight(baseUrl, "/"), apiKey, network, client}
}

type assetsResponse struct {
	Assets []entity.Asset `json:"assets"`
}

func (a api) GetAssets(ctx context.Context, query AssetQuery) ([]entity.Asset, error) {
	params := url.Values{}
	params.Set("collection", query.Collection)
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	var resp assetsResponse
	if err := a.do(ctx, http.MethodGet, "/api/v1/assets", params, nil, &resp); err != nil {
		zap.L().With(zap.Error(err), zap.String("collection", query.Collection)).Warn("OpenSea: Failed to get assets")
		return nil, err
	}

	zap.L().With(zap.String("collection", query.Collection), zap.Int("count", len(resp.Assets))).Debug("OpenSea: Assets fetched")

	return resp.Assets, nil
}

type ordersResponse struct {
	Orders []orderResponse `json:"orders"`
}

type orderResponse struct {
	OrderHash       string          `json:"order_hash"`
	Side            int             `json:"side"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	ExpirationTime  int64           `json:"expiration_time"`
	ProtocolAddress string          `json:"protocol_address"`
	Maker           struct {
		Address string `json:"address"`
	} `json:"maker"`
	PaymentTokenContract struct {
		Address string `json:"address"`
	} `json:"payment_token_contract"`
	Asset struct {
		TokenId       string `json:"token_id"`
		AssetContract struct {
			Address string `json:"address"`
		} `json:"asset_contract"`
	} `json:"asset"`
}

func (o orderResponse) toOrder() *entity.Order {
	return &entity.Order{
		Hash:                 o.OrderHash,
		Side:                 entity.OrderSide(o.Side),
		TokenId:              o.Asset.TokenId,
		AssetContractAddress: o.Asset.AssetContract.Address,
		Maker:                o.Maker.Address,
		CurrentPrice:         o.CurrentPrice,
		PaymentToken:         o.PaymentTokenContract.Address,
		ProtocolAddress:      o.ProtocolAddress,
		ExpirationTime:       o.ExpirationTime,
	}
}

func (a api) GetOrder(ctx context.Context, query OrderQuery) (*entity.Order, error) {
	params := url.Values{}
	params.Set("side", strconv.Itoa(int(query.Side)))
	params.Set("token_id", query.TokenId)
	params.Set("asset_contract_address", query.AssetContractAddress)
	params.Set("limit", "1")

	var resp ordersResponse
	if err := a.do(ctx, http.MethodGet, "/wyvern/v1/orders", params, nil, &resp); err != nil {
		return nil, err
	}

	if len(resp.Orders) == 0 {
		zap.L().With(
			zap.String("tokenId", query.TokenId),
			zap.String("contract", query.AssetContractAddress),
			zap.String("side", query.Side.String()),
		).Info("OpenSea: No order found")
		return nil, ErrOrderNotFound
	}

	return resp.Orders[0].toOrder(), nil
}

type fulfillmentRequest struct {
	Listing struct {
		Hash            string `json:"hash"`
		Chain           string `json:"chain"`
		ProtocolAddress string `json:"protocol_address"`
	} `json:"listing"`
	Fulfiller struct {
		Address string `json:"address"`
	} `json:"fulfiller"`
}

type fulfillmentResponse struct {
	FulfillmentData struct {
		Transaction struct {
			To    string          `json:"to"`
			Value decimal.Decimal `json:"value"`
			Data  string          `json:"data"`
		} `json:"transaction"`
	} `json:"fulfillment_data"`
}

func (a api) GetFulfillmentData(ctx context.Context, order entity.Order, fulfiller string) (*entity.Transaction, error) {
	var body fulfillmentRequest
	body.Listing.Hash = order.Hash
	body.Listing.Chain = a.network.Chain()
	body.Listing.ProtocolAddress = order.ProtocolAddress
	body.Fulfiller.Address = fulfiller

	var resp fulfillmentResponse
	if err := a.do(ctx, http.MethodPost, "/v2/listings/fulfillment_data", nil, body, &resp); err != nil {
		zap.L().With(zap.Error(err), zap.String("order", order.Hash)).Warn("OpenSea: Failed to get fulfillment data")
		return nil, err
	}

	tx := resp.FulfillmentData.Transaction

	return &entity.Transaction{
		From:  fulfiller,
		To:    tx.To,
		Value: tx.Value.BigInt(),
		Data:  tx.Data,
	}, nil
}

func (a api) do(ctx context.Context, method, path string, params url.Values, body interface{}, out interface{}) error {
	uri := a.baseUrl + path
	if len(params) != 0 {
		uri += "?" + params.Encode()
	}

	var payload io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return err
		}
		payload = buf
	}

	req, err := retryablehttp.NewRequest(method, uri, payload)
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.apiKey != "" {
		req.Header.Set("X-API-KEY", a.apiKey)
	}

	zap.L().With(zap.String("method", method), zap.String("uri", uri)).Debug("OpenSea: Request")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return StatusError{resp.StatusCode, resp.Status, strings.TrimSpace(string(data))}
	}

	return json.Unmarshal(data, out)
}
