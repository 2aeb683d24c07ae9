package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workermill-examples/shipapi/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name            string
		in              dto.PageRequest
		page, perPage   int
	}{
		{"defaults", dto.PageRequest{}, 1, 20},
		{"negativos", dto.PageRequest{Page: -3, PerPage: -1}, 1, 20},
		{"tope de per_page", dto.PageRequest{Page: 2, PerPage: 500}, 2, 100},
		{"valores válidos", dto.PageRequest{Page: 3, PerPage: 50}, 3, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.page, tc.in.Page)
			assert.Equal(t, tc.perPage, tc.in.PerPage)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	p := dto.PageRequest{Page: 3, PerPage: 25}
	assert.Equal(t, 50, p.Offset())
	assert.Equal(t, 25, p.Limit())
}

func TestNewPagination_TotalPages(t *testing.T) {
	p := dto.NewPagination(dto.PageRequest{Page: 1, PerPage: 20}, 41)
	assert.Equal(t, 3, p.TotalPages, "41 elementos en páginas de 20 son 3 páginas")

	empty := dto.NewPagination(dto.PageRequest{Page: 1, PerPage: 20}, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestNewListResponse_DataNuncaEsNull(t *testing.T) {
	resp := dto.NewListResponse[string](nil, dto.PageRequest{Page: 1, PerPage: 20}, 0)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":[]`, "una página vacía serializa data como [] y no como null")
}

func TestNewErrorResponse_DetailsNuncaEsNull(t *testing.T) {
	resp := dto.NewErrorResponse("NOT_FOUND", "no existe", nil)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"details":[]`)
	assert.Contains(t, string(raw), `"code":"NOT_FOUND"`)
}
