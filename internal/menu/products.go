package menu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YelzhanWeb/daily-orders/internal/domain"
)

const imageRoot = "/images/"

// Products is the canteen menu compiled into the binary.
var Products = []domain.MenuItem{
	// breakfast
	{ID: "plain-dosa", Name: "Dosai", Price: 30, Image: imageRoot + "plain-dosa.jpg", Categories: []string{"breakfast", "lunch"}},
	{ID: "podi-dosa", Name: "Podi Dosai", Price: 40, Image: imageRoot + "podi-dosa.jpg", Categories: []string{"breakfast"}},
	{ID: "puri", Name: "Poori(2PCS)", Price: 40, Image: imageRoot + "puri.jpg", Categories: []string{"breakfast"}},
	{ID: "onion-dosa", Name: "Onion Dosai", Price: 40, Image: imageRoot + "onion-dosa.jpg", Categories: []string{"breakfast"}},
	{ID: "masala-dosa", Name: "Masala Dosai", Price: 40, Image: imageRoot + "masala-dosa.jpg", Categories: []string{"breakfast"}},
	{ID: "gobi-dosa", Name: "Gobi Dosai", Price: 40, Image: imageRoot + "gobi-dosa.jpg", Categories: []string{"breakfast", "lunch"}},
	{ID: "chapati", Name: "Chapati(2PCS)", Price: 30, Image: imageRoot + "chapati.jpg", Categories: []string{"breakfast", "lunch"}},
	{ID: "pongal", Name: "Pongal", Price: 30, Image: imageRoot + "pongal.jpg", Categories: []string{"breakfast"}},
	{ID: "chola-poori", Name: "Chola Poori(2PCS)", Price: 40, Image: imageRoot + "chola-poori.jpg", Categories: []string{"breakfast"}},
	{ID: "kari-dosa", Name: "Kari Dosa", Price: 40, Image: imageRoot + "kari-dosa.jpg", Categories: []string{"breakfast", "lunch"}},
	{ID: "egg-dosa", Name: "Egg Dosa", Price: 60, Image: imageRoot + "egg-dosai.jpg", Categories: []string{"breakfast"}},
	{ID: "vadai", Name: "Vadai", Price: 8, Image: imageRoot + "vadai.jpg", Categories: []string{"breakfast"}},

	// lunch
	{ID: "fried-rice-half", Name: "Fried Rice (Half)", Price: 60, Image: imageRoot + "fried-rice.jpg", Categories: []string{"lunch", "chinese"}},
	{ID: "fried-rice-full", Name: "Fried Rice (Full)", Price: 100, Image: imageRoot + "fried-rice.jpg", Categories: []string{"lunch", "chinese"}},
	{ID: "chicken-biryani", Name: "Chicken Biryani", Price: 60, Image: imageRoot + "biriyani.jpg", Categories: []string{"lunch"}},
	{ID: "veg-biryani", Name: "Veg Birinji", Price: 40, Image: imageRoot + "veg-rice.jpg", Categories: []string{"lunch"}},
	{ID: "sambar-rice", Name: "Sambar Rice", Price: 30, Image: imageRoot + "sambar-rice.jpg", Categories: []string{"lunch"}},
	{ID: "curd-rice", Name: "Curd Rice", Price: 30, Image: imageRoot + "curd-rice.jpg", Categories: []string{"lunch"}},
	{ID: "lemon-rice", Name: "Variety Rice", Price: 30, Image: imageRoot + "lemon-rice.jpg", Categories: []string{"lunch"}},
	{ID: "parotta-2", Name: "Parotta 2", Price: 25, Image: imageRoot + "parotta2.jpg", Categories: []string{"lunch"}},
	{ID: "parotta-3", Name: "Parotta 3", Price: 30, Image: imageRoot + "parotta3.jpg", Categories: []string{"lunch"}},
	{ID: "kushka", Name: "Kuska", Price: 50, Image: imageRoot + "kushka.jpg", Categories: []string{"lunch"}},
	{ID: "gravy", Name: "Chicken Gravy Sadam", Price: 50, Image: imageRoot + "chicken-gravy-sadham.jpg", Categories: []string{"lunch"}},

	// side dish
	{ID: "egg-masala", Name: "Egg Masala", Price: 10, Image: imageRoot + "egg-masala.jpg", Categories: []string{"side dish"}},
	{ID: "potato", Name: "Potato Poriyal", Price: 10, Image: imageRoot + "potato.jpg", Categories: []string{"side dish"}},
	{ID: "omelette", Name: "Omelette", Price: 20, Image: imageRoot + "omelette.jpg", Categories: []string{"side dish"}},
	{ID: "kalaki", Name: "Kalaki", Price: 20, Image: imageRoot + "kalaki.jpg", Categories: []string{"side dish"}},
	{ID: "egg-podimas", Name: "Egg Podimas", Price: 30, Image: imageRoot + "egg-podimas.jpg", Categories: []string{"side dish"}},
	{ID: "chicken65", Name: "Chicken 65", Price: 50, Image: imageRoot + "chicken-65.jpg", Categories: []string{"side dish"}},
	{ID: "gobi65", Name: "Gobi 65", Price: 50, Image: imageRoot + "gobi65.jpg", Categories: []string{"side dish"}},
	{ID: "chilli gobi", Name: "Chilli Gobi", Price: 90, Image: imageRoot + "chilligobi.jpg", Categories: []string{"side dish"}},
	{ID: "chilli ckicken", Name: "Chilli Chicken", Price: 120, Image: imageRoot + "chillichicken.jpg", Categories: []string{"side dish"}},

	// chinese
	{ID: "noodles", Name: "Chicken Noodles", Price: 100, Image: imageRoot + "noodles.jpg", Categories: []string{"chinese"}},
	{ID: "gobi-rice-half", Name: "Gobi Rice(Half)", Price: 60, Image: imageRoot + "gobirice.jpg", Categories: []string{"chinese"}},
	{ID: "gobi-rice(Full)", Name: "Gobi Rice(Full)", Price: 90, Image: imageRoot + "gobirice.jpg", Categories: []string{"chinese"}},
	{ID: "mushroom-rice", Name: "Mushroom Rice", Price: 90, Image: imageRoot + "mushroomrice.jpg", Categories: []string{"chinese"}},
	{ID: "panner-rice", Name: "Panner Rice", Price: 90, Image: imageRoot + "pannerrice.jpg", Categories: []string{"chinese"}},
	{ID: "chilli-parotta", Name: "Chilli Parotta", Price: 100, Image: imageRoot + "chilli-parotta.jpg", Categories: []string{"chinese"}},
	{ID: "kothu-parotta", Name: "Kothu Parotta(Full)", Price: 90, Image: imageRoot + "kothu-parotta.jpg", Categories: []string{"chinese"}},
	{ID: "kothu-parotta(Half)", Name: "Kothu Parotta(Half)", Price: 60, Image: imageRoot + "kothu-parotta.jpg", Categories: []string{"chinese"}},
	{ID: "chicken-kothu", Name: "Chicken Kothu", Price: 120, Image: imageRoot + "chickenkothu.jpg", Categories: []string{"chinese"}},
	{ID: "egg-veechu", Name: "Egg Veechu", Price: 30, Image: imageRoot + "eggveechu.jpg", Categories: []string{"chinese"}},
	{ID: "panner-veechu", Name: "Panner Veechu", Price: 40, Image: imageRoot + "pannerveechu.jpg", Categories: []string{"chinese"}},
	{ID: "egg-labha", Name: "Egg Labha", Price: 60, Image: imageRoot + "egglabha.jpg", Categories: []string{"chinese"}},
	{ID: "chicken-labha", Name: "Chicken Labha", Price: 100, Image: imageRoot + "chickenlabha.jpg", Categories: []string{"chinese"}},
}

type catalogFile struct {
	Items []domain.MenuItem `yaml:"items"`
}

// Load returns the compiled-in menu, or the items of a YAML catalog file
// when path is set.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return domain.NewCatalog(Products)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("catalog file %s has no items", path)
	}

	return domain.NewCatalog(f.Items)
}
