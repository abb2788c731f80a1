package domain

import (
	"encoding/json"
	"reflect"
	"strings"
)

// orderDetailFields is the wire shape of OrderDetail without its methods.
type orderDetailFields OrderDetail

var detailKeys = declaredKeys(reflect.TypeOf(OrderDetail{}))

func declaredKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}

func (d *OrderDetail) UnmarshalJSON(b []byte) error {
	var fields orderDetailFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}

	fields.Extra = nil
	for k, v := range all {
		if _, ok := detailKeys[k]; ok {
			continue
		}
		if fields.Extra == nil {
			fields.Extra = make(map[string]json.RawMessage)
		}
		fields.Extra[k] = v
	}
	*d = OrderDetail(fields)
	return nil
}

func (d OrderDetail) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(orderDetailFields(d))
	if err != nil || len(d.Extra) == 0 {
		return b, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if _, declared := all[k]; !declared {
			all[k] = v
		}
	}
	return json.Marshal(all)
}
