package rawdata

import (
	"fmt"
	"sort"

	"github.com/valyala/fastjson"
)

// Result is a successful Flow API response. Body is relayed untouched.
type Result struct {
	Body []byte
	// ItemCount is only meaningful when HasItems is true.
	ItemCount int
	HasItems  bool
}

// NewResult checks that body is JSON and counts its top-level "items" array
// when there is one.
func NewResult(body []byte) (*Result, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	result := &Result{Body: body}
	if items := itemsOf(v); items != nil {
		result.HasItems = true
		result.ItemCount = len(items)
	}
	return result, nil
}

// Fields returns the sorted set of keys found across the objects of the
// payload's "items" array.
func (r *Result) Fields() ([]string, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(r.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	seen := make(map[string]struct{})
	for _, item := range itemsOf(v) {
		obj, err := item.Object()
		if err != nil {
			continue
		}
		obj.Visit(func(key []byte, _ *fastjson.Value) {
			seen[string(key)] = struct{}{}
		})
	}

	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields, nil
}

func itemsOf(v *fastjson.Value) []*fastjson.Value {
	if v.Type() != fastjson.TypeObject {
		return nil
	}
	items := v.Get("items")
	if items == nil || items.Type() != fastjson.TypeArray {
		return nil
	}
	arr, err := items.Array()
	if err != nil {
		return nil
	}
	if arr == nil {
		arr = []*fastjson.Value{}
	}
	return arr
}
