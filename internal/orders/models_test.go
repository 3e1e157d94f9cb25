package orders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemDecodesEarlierSnapshots(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		color  string
		fabric string
		image  string
	}{
		{
			name:   "current keys",
			raw:    `{"id":"p1","name":"Sofá","price":"1500","quantity":2,"selected_color":"Cinza","selected_fabric":"Linho","image":"https://img/1.jpg"}`,
			color:  "Cinza",
			fabric: "Linho",
			image:  "https://img/1.jpg",
		},
		{
			name:   "camelCase variants and image list",
			raw:    `{"id":"p1","name":"Sofá","price":1500,"quantity":2,"selectedColor":"Bege","selectedFabric":"Veludo","images":["https://img/a.jpg","https://img/b.jpg"]}`,
			color:  "Bege",
			fabric: "Veludo",
			image:  "https://img/a.jpg",
		},
		{
			name: "no variants",
			raw:  `{"id":"p1","name":"Sofá","price":1500}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it Item
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &it))

			assert.Equal(t, "p1", it.ProductID)
			assert.Equal(t, "1500", it.Price.String())
			assert.Equal(t, tt.color, it.SelectedColor)
			assert.Equal(t, tt.fabric, it.SelectedFabric)
			assert.Equal(t, tt.image, it.Image)
		})
	}
}

func TestOrderItemsKeepVariantsFromEarlierRecords(t *testing.T) {
	var items []Item
	raw := `[{"id":"p1","name":"Sofá","price":1000,"quantity":1,"selectedColor":"Azul"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &items))

	msg := RenderMessage("Loja", Order{CustomerName: "Ana", Items: items})
	assert.Contains(t, msg, "Cor: Azul")
	assert.Contains(t, msg, "Tecido: N/A")
}
