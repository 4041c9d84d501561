package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestDecodePage_NestedTwoLevels(t *testing.T) {
	body := []byte(`{"data":{"data":[{"id":1,"name":"a"},{"id":2,"name":"b"}],"total":17}}`)

	page := DecodePage[testItem](body)

	assert.Equal(t, []testItem{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, page.Items)
	assert.Equal(t, 17, page.Total)
}

func TestDecodePage_NestedTwoLevels_CountField(t *testing.T) {
	body := []byte(`{"data":{"data":[{"id":1,"name":"a"}],"count":9}}`)

	page := DecodePage[testItem](body)

	assert.Len(t, page.Items, 1)
	assert.Equal(t, 9, page.Total)
}

func TestDecodePage_NestedTwoLevels_NoTotal(t *testing.T) {
	body := []byte(`{"data":{"data":[{"id":1,"name":"a"},{"id":2,"name":"b"}]}}`)

	page := DecodePage[testItem](body)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
}

func TestDecodePage_NestedOneLevel(t *testing.T) {
	body := []byte(`{"data":[{"id":3,"name":"c"}],"total":42}`)

	page := DecodePage[testItem](body)

	assert.Equal(t, []testItem{{ID: 3, Name: "c"}}, page.Items)
	assert.Equal(t, 42, page.Total)
}

func TestDecodePage_NestedOneLevel_NoTotal(t *testing.T) {
	body := []byte(`{"data":[{"id":3,"name":"c"}]}`)

	page := DecodePage[testItem](body)

	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Total)
}

func TestDecodePage_BareArray(t *testing.T) {
	body := []byte(`[{"id":4,"name":"d"},{"id":5,"name":"e"},{"id":6,"name":"f"}]`)

	page := DecodePage[testItem](body)

	assert.Len(t, page.Items, 3)
	assert.Equal(t, 3, page.Total)
}

func TestDecodePage_DeeperMatchWins(t *testing.T) {
	// Both levels hold a list; the deeper one takes precedence.
	body := []byte(`{"data":{"data":[{"id":1,"name":"inner"}],"total":1}}`)

	page := DecodePage[testItem](body)

	assert.Equal(t, "inner", page.Items[0].Name)
	assert.Equal(t, 1, page.Total)
}

func TestDecodePage_MalformedPayloads(t *testing.T) {
	payloads := [][]byte{
		[]byte(`null`),
		[]byte(`{}`),
		[]byte(`"just a string"`),
		[]byte(`{"data":null}`),
		[]byte(`{"data":{"data":null}}`),
		[]byte(`{"data":"not a list"}`),
		[]byte(`12345`),
		[]byte(``),
		[]byte(`{"data":{"data":{"still":"not a list"}}}`),
	}

	for _, payload := range payloads {
		page := DecodePage[testItem](payload)
		assert.NotNil(t, page.Items, "payload %q", payload)
		assert.Empty(t, page.Items, "payload %q", payload)
		assert.Equal(t, 0, page.Total, "payload %q", payload)
	}
}

func TestDecodePage_ListOfWrongShape(t *testing.T) {
	// A list whose elements cannot decode into the target type is treated
	// as absent rather than failing.
	body := []byte(`{"data":["plain","strings"]}`)

	page := DecodePage[testItem](body)

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
}
