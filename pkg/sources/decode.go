package sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/logging"
)

// DecodeServices decodes a service catalog. JSON input may be a bare array
// or an envelope holding the array (or a JSON-encoded string of it) under
// "data" or "services".
func DecodeServices(data []byte, format Format, file string) ([]catalogs.Service, error) {
	switch format {
	case FormatJSON:
		return decodeJSONList[catalogs.Service](data, file, "data", "services")
	case FormatYAML:
		return decodeYAMLList[catalogs.Service](data, file, "services")
	}
	return nil, unsupported(format, file, ServicesID)
}

// DecodeFundingSources decodes the funding source catalog.
func DecodeFundingSources(data []byte, format Format, file string) ([]catalogs.FundingSource, error) {
	switch format {
	case FormatJSON:
		return decodeJSONList[catalogs.FundingSource](data, file, "data", "fundingSources")
	case FormatYAML:
		return decodeYAMLList[catalogs.FundingSource](data, file, "fundingSources")
	}
	return nil, unsupported(format, file, FundingSourcesID)
}

// DecodeActivities decodes an activity catalog. Records without an
// activity text are dropped.
func DecodeActivities(data []byte, format Format, file string) ([]catalogs.Activity, error) {
	var (
		acts []catalogs.Activity
		err  error
	)
	switch format {
	case FormatJSON:
		acts, err = decodeJSONList[catalogs.Activity](data, file, "data", "activities")
	case FormatYAML:
		acts, err = decodeYAMLList[catalogs.Activity](data, file, "activities")
	case FormatCSV:
		acts, err = decodeActivitiesCSV(data, file)
	default:
		return nil, unsupported(format, file, CareActivitiesID)
	}
	if err != nil {
		return nil, err
	}

	out := acts[:0]
	for _, a := range acts {
		a.Category = strings.TrimSpace(a.Category)
		a.Activity = strings.TrimSpace(a.Activity)
		a.Scope = normalizeScope(string(a.Scope))
		if a.Activity == "" {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// DecodePrices decodes the indicative price table. In CSV input a cell
// that is not a number leaves that value unset and is logged at warn;
// the rest of the table still loads. Only WithLogger applies.
func DecodePrices(data []byte, format Format, file string, opts ...Option) ([]catalogs.Price, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	var (
		prices []catalogs.Price
		err    error
	)
	switch format {
	case FormatJSON:
		prices, err = decodeJSONList[catalogs.Price](data, file, "data", "prices")
	case FormatYAML:
		prices, err = decodeYAMLList[catalogs.Price](data, file, "prices")
	case FormatCSV:
		return decodePricesCSV(data, file, logging.OrDefault(cfg.logger))
	default:
		return nil, unsupported(format, file, PricesID)
	}
	if err != nil {
		return nil, err
	}
	for i := range prices {
		prices[i].Service = strings.TrimSpace(prices[i].Service)
		prices[i].Unit = strings.TrimSpace(prices[i].Unit)
	}
	return prices, nil
}

// DecodeBudgetCodes decodes the entitlement and usage budget code lists.
// JSON input is an object with "entitlementCodes" and "usageCodes", either
// bare or under "data" (where it may be a JSON-encoded string). A bare
// array is read as the entitlement list.
func DecodeBudgetCodes(data []byte, format Format, file string) (catalogs.BudgetCodes, error) {
	var (
		codes catalogs.BudgetCodes
		err   error
	)
	switch format {
	case FormatJSON:
		codes, err = decodeBudgetJSON(data, file)
	case FormatYAML:
		codes, err = decodeBudgetYAML(data, file)
	default:
		return codes, unsupported(format, file, BudgetCodesID)
	}
	if err != nil {
		return catalogs.BudgetCodes{}, err
	}
	for _, list := range [][]catalogs.BudgetCode{codes.Entitlement, codes.Usage} {
		for i := range list {
			list[i].Code = strings.TrimSpace(list[i].Code)
			list[i].Text = strings.TrimSpace(list[i].Text)
		}
	}
	return codes, nil
}

func decodeBudgetJSON(data []byte, file string) (catalogs.BudgetCodes, error) {
	var codes catalogs.BudgetCodes
	data = bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return codes, nil
	}

	switch data[0] {
	case '[':
		list, err := decodeJSONList[catalogs.BudgetCode](data, file)
		codes.Entitlement = list
		return codes, err
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(data, &envelope); err != nil {
			return codes, errors.WrapParse("json", file, err)
		}
		if raw, ok := envelope["data"]; ok {
			raw = bytes.TrimSpace(raw)
			if len(raw) > 0 && raw[0] == '"' {
				var inner string
				if err := json.Unmarshal(raw, &inner); err != nil {
					return codes, errors.WrapParse("json", file, err)
				}
				raw = []byte(inner)
			}
			return decodeBudgetJSON(raw, file)
		}
		_, hasEntitlement := envelope["entitlementCodes"]
		_, hasUsage := envelope["usageCodes"]
		if !hasEntitlement && !hasUsage {
			return codes, errors.NewParseError("json", file,
				"expected an object with entitlementCodes or usageCodes", nil)
		}
		if err := json.Unmarshal(data, &codes); err != nil {
			return codes, errors.WrapParse("json", file, err)
		}
		return codes, nil
	}
	return codes, errors.NewParseError("json", file, "expected budget code lists", nil)
}

func decodeBudgetYAML(data []byte, file string) (catalogs.BudgetCodes, error) {
	var codes catalogs.BudgetCodes
	if len(bytes.TrimSpace(data)) == 0 {
		return codes, nil
	}
	if err := yaml.Unmarshal(data, &codes); err == nil {
		return codes, nil
	}
	list, err := decodeYAMLList[catalogs.BudgetCode](data, file, "entitlementCodes")
	codes.Entitlement = list
	return codes, err
}

func unsupported(format Format, file string, id ID) error {
	return errors.NewParseError(string(format), file, fmt.Sprintf("format not supported for %s", id), nil)
}

// decodeJSONList decodes a JSON array of T, either bare or wrapped in an
// object under one of keys. A wrapped value may itself be a JSON string
// holding the array.
func decodeJSONList[T any](data []byte, file string, keys ...string) ([]T, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(data) == 0 {
		return []T{}, nil
	}

	switch data[0] {
	case '[':
		var list []T
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, errors.WrapParse("json", file, err)
		}
		return list, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, errors.WrapParse("json", file, err)
		}
		for _, key := range keys {
			raw, ok := envelope[key]
			if !ok {
				continue
			}
			raw = bytes.TrimSpace(raw)
			if len(raw) > 0 && raw[0] == '"' {
				var inner string
				if err := json.Unmarshal(raw, &inner); err != nil {
					return nil, errors.WrapParse("json", file, err)
				}
				return decodeJSONList[T]([]byte(inner), file)
			}
			return decodeJSONList[T](raw, file)
		}
		return nil, errors.NewParseError("json", file,
			fmt.Sprintf("expected an array or an object with one of: %s", strings.Join(keys, ", ")), nil)
	case 'n':
		if bytes.Equal(data, []byte("null")) {
			return []T{}, nil
		}
	}
	return nil, errors.NewParseError("json", file, "expected an array of records", nil)
}

// decodeYAMLList decodes a YAML sequence of T, either bare or under key.
func decodeYAMLList[T any](data []byte, file string, key string) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var list []T
	listErr := yaml.Unmarshal(data, &list)
	if listErr == nil {
		return list, nil
	}

	var envelope map[string][]T
	if err := yaml.Unmarshal(data, &envelope); err == nil {
		if list, ok := envelope[key]; ok {
			return list, nil
		}
	}
	return nil, errors.WrapParse("yaml", file, listErr)
}

func normalizeScope(s string) catalogs.Scope {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "included":
		return catalogs.ScopeIncluded
	case "excluded":
		return catalogs.ScopeExcluded
	}
	return catalogs.Scope(s)
}

// parseAmount parses a currency cell such as "$1,234.50". Empty cells are zero.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseLevel parses a specificity level cell. Empty cells are zero, which
// the price resolver ignores.
func parseLevel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
