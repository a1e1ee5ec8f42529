package textfold

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"İstanbul", "istanbul"},
		{"ISPARTA", "isparta"},
		{"Kırşehir", "kirsehir"},
		{"Çanakkale", "canakkale"},
		{"Muğla", "mugla"},
		{"Gümüşhane", "gumushane"},
		{"  Boş   Araç ", "bos arac"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestJoin(t *testing.T) {
	require.Equal(t, "ankara cankaya tir", Join("Ankara", "", "Çankaya", "Tır"))
}

func TestPattern(t *testing.T) {
	require.Equal(t, "", Pattern("   "))
	require.Equal(t, "%eskisehir%", Pattern("Eskişehir"))
	require.Equal(t, `%100\%%`, Pattern("100%"))
}
