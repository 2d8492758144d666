package actions

import (
	"github.com/rony4d/go-opera-adventure/inter/plain"
	"github.com/rony4d/go-opera-adventure/world"
)

// Action is a decoded, executable payload.
type Action interface {
	TypeID() string
	PlainValue() plain.Value
	Execute(ctx *Context, prev world.State) (world.State, error)
}

type loader interface {
	Action
	LoadPlainValue(values plain.List) error
}

var constructors = map[string]func() loader{
	WantedTypeID: func() loader { return &Wanted{} },
}

// Marshal returns the canonical payload bytes of a.
func Marshal(a Action) ([]byte, error) {
	return plain.Marshal(a.PlainValue())
}

// Decode parses a payload. Anything that is not a canonical encoding of a
// known action fails with MalformedPayload.
func Decode(raw []byte) (Action, error) {
	v, err := plain.Unmarshal(raw)
	if err != nil {
		return nil, fail(MalformedPayload, "%v", err)
	}
	return FromPlainValue(v)
}

// FromPlainValue builds the action described by v.
func FromPlainValue(v plain.Value) (Action, error) {
	dict, ok := v.(plain.Dict)
	if !ok {
		return nil, fail(MalformedPayload, "payload is %T, want dict", v)
	}
	typeID, ok := dict["type_id"].(plain.Text)
	if !ok {
		return nil, fail(MalformedPayload, "type_id missing")
	}
	newAction, ok := constructors[string(typeID)]
	if !ok {
		return nil, fail(MalformedPayload, "unknown type_id %q", string(typeID))
	}
	values, ok := dict["values"].(plain.List)
	if !ok {
		return nil, fail(MalformedPayload, "values missing")
	}
	a := newAction()
	if err := a.LoadPlainValue(values); err != nil {
		return nil, err
	}
	return a, nil
}

// DecodeWanted parses a wanted payload.
func DecodeWanted(raw []byte) (*Wanted, error) {
	a, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	w, ok := a.(*Wanted)
	if !ok {
		return nil, fail(MalformedPayload, "type_id %q is not %q", a.TypeID(), WantedTypeID)
	}
	return w, nil
}
