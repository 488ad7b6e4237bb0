package ddb

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
)

// Parse decodes a character document. It accepts either the bare character
// object or the character service envelope {"success":true,"data":{...}}.
// The result is validated before it is returned.
func Parse(data []byte) (*Character, error) {
	if len(data) == 0 {
		return nil, errors.InvalidArgument("character JSON is empty")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidArgument("character JSON is malformed")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.InvalidArgument("character JSON must be an object")
	}

	body := data
	if envelope := root.Get("data"); envelope.IsObject() {
		if success := root.Get("success"); success.Exists() && !success.Bool() {
			msg := root.Get("message").String()
			if msg == "" {
				msg = "character service reported failure"
			}
			return nil, errors.InvalidArgument(msg)
		}
		body = []byte(envelope.Raw)
	}

	var character Character
	if err := json.Unmarshal(body, &character); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "character JSON does not match the expected schema")
	}

	if err := character.Validate(); err != nil {
		return nil, err
	}

	return &character, nil
}
