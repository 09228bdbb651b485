package strategy

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/weiihann/modelbench/fixture"
)

var reflectAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Typed holds the fixture in a Model built by a hand-written decoder.
type Typed struct{}

func (Typed) Name() string { return "typed" }

func (Typed) Deserialize(f fixture.Fixture) (Value, error) {
	return DecodeModel(f.Bytes())
}

func (t Typed) ReadField(v Value, key string) (Scalar, error) {
	m, ok := v.(*Model)
	if !ok {
		return Scalar{}, wrongValue(t.Name(), v)
	}

	return m.Get(key)
}

func (t Typed) WriteField(v Value, key string, s Scalar) (Value, error) {
	m, ok := v.(*Model)
	if !ok {
		return nil, wrongValue(t.Name(), v)
	}

	if err := m.Set(key, s); err != nil {
		return nil, err
	}

	return m, nil
}

// Reflect holds the fixture in a Model built by jsoniter's reflective
// struct mapping.
type Reflect struct{}

func (Reflect) Name() string { return "reflect" }

func (Reflect) Deserialize(f fixture.Fixture) (Value, error) {
	data := f.Bytes()
	if !isObject(data) {
		return nil, formatError(errors.New("top-level value is not an object"))
	}

	m := new(Model)
	if err := reflectAPI.Unmarshal(data, m); err != nil {
		return nil, formatError(err)
	}

	return m, nil
}

func (r Reflect) ReadField(v Value, key string) (Scalar, error) {
	m, ok := v.(*Model)
	if !ok {
		return Scalar{}, wrongValue(r.Name(), v)
	}

	return m.Get(key)
}

func (r Reflect) WriteField(v Value, key string, s Scalar) (Value, error) {
	m, ok := v.(*Model)
	if !ok {
		return nil, wrongValue(r.Name(), v)
	}

	if err := m.Set(key, s); err != nil {
		return nil, err
	}

	return m, nil
}
