package foodata

// SomeData is returned by the API.
type SomeData struct {
	Value string
}

// AnotherData is derived from SomeData.
type AnotherData struct {
	Value string
}

// YetAnotherData is derived from AnotherData.
type YetAnotherData struct {
	Value string
}

// FooData is the final product of the chain.
type FooData struct {
	Value string
}

// NewFooData builds FooData from the last lookup.
func NewFooData(d YetAnotherData) FooData {
	return FooData{Value: d.Value}
}
