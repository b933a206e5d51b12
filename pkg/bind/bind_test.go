package bind_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/flowershop/pkg/bind"
)

type orderInput struct {
	LotID    uint `json:"lot_id"   validate:"required"`
	Quantity int  `json:"quantity" validate:"required,gt=0"`
}

func TestJSONDecodesAndValidates(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"lot_id":3,"quantity":2}`))
	var in orderInput
	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, uint(3), in.LotID)

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"lot_id":3,"quantity":-2}`))
	errs, err = bind.JSON(req, &orderInput{})
	require.NoError(t, err)
	assert.Contains(t, errs, "quantity")
}

func TestJSONRejectsBadBodies(t *testing.T) {
	_, err := bind.JSON(httptest.NewRequest("POST", "/", strings.NewReader("")), &orderInput{})
	assert.EqualError(t, err, "request body is empty")

	_, err = bind.JSON(httptest.NewRequest("POST", "/", strings.NewReader("{nope")), &orderInput{})
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestJSONBodyLimit(t *testing.T) {
	bind.SetMaxBodyBytes(16)
	t.Cleanup(func() { bind.SetMaxBodyBytes(0) })

	body := `{"lot_id":1,"quantity":1,"padding":"` + strings.Repeat("x", 64) + `"}`
	_, err := bind.JSON(httptest.NewRequest("POST", "/", strings.NewReader(body)), &orderInput{})
	assert.ErrorContains(t, err, "too large")
}
