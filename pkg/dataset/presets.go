package dataset

import (
	"fmt"

	"github.com/easyops/datachat-go/pkg/core/config"
)

// Preset 绑定一个具体数据集：数据源、Schema 与清洗规则
type Preset struct {
	// Name 预设名称
	Name string
	// SourceURL 网络数据源
	SourceURL string
	// FallbackPath 本地降级文件
	FallbackPath string
	// Schema 列定义与角色列
	Schema *Schema
	// Derived 派生求和列
	Derived []DerivedColumn
}

// EnergyPreset 返回 OWID 能源消费数据集预设
func EnergyPreset() Preset {
	schema := &Schema{
		Columns: []Column{
			{Name: "country", Kind: ColumnText, Required: true},
			{Name: "iso_code", Kind: ColumnText},
			{Name: "year", Kind: ColumnNumber, Required: true},
			{Name: "solar_consumption", Kind: ColumnNumber},
			{Name: "wind_consumption", Kind: ColumnNumber},
			{Name: "hydro_consumption", Kind: ColumnNumber},
			{Name: "coal_consumption", Kind: ColumnNumber},
			{Name: "oil_consumption", Kind: ColumnNumber},
			{Name: "gas_consumption", Kind: ColumnNumber},
		},
		EntityColumn:    "country",
		PeriodColumn:    "year",
		KeyColumn:       "iso_code",
		QualityColumn:   "total_renewables",
		MagnitudeColumn: "total_consumption",
		ProjectionColumns: []string{
			"country", "year",
			"solar_consumption", "wind_consumption", "hydro_consumption",
			"coal_consumption", "oil_consumption", "gas_consumption",
			"total_renewables", "total_fossil",
		},
	}

	return Preset{
		Name:      config.PresetEnergy,
		SourceURL: "https://raw.githubusercontent.com/owid/energy-data/master/owid-energy-data.csv",
		Schema:    schema,
		Derived: []DerivedColumn{
			{Name: "total_renewables", Sum: []string{"solar_consumption", "wind_consumption", "hydro_consumption"}},
			{Name: "total_fossil", Sum: []string{"coal_consumption", "oil_consumption", "gas_consumption"}},
			{Name: "total_consumption", Sum: []string{
				"solar_consumption", "wind_consumption", "hydro_consumption",
				"coal_consumption", "oil_consumption", "gas_consumption",
			}},
		},
	}
}

// MoviesPreset 返回电影评分数据集预设
func MoviesPreset() Preset {
	schema := &Schema{
		Columns: []Column{
			{Name: "Title", Kind: ColumnText, Required: true},
			{Name: "Genre", Kind: ColumnText, Required: true},
			{Name: "Director", Kind: ColumnText, Required: true},
			{Name: "Year", Kind: ColumnNumber, Required: true},
			{Name: "Rating", Kind: ColumnNumber, Required: true},
			{Name: "Revenue (Millions)", Kind: ColumnNumber},
		},
		EntityColumn:    "Director",
		PeriodColumn:    "Year",
		TagColumn:       "Genre",
		QualityColumn:   "Rating",
		MagnitudeColumn: "Revenue (Millions)",
		ProjectionColumns: []string{
			"Title", "Genre", "Director", "Year", "Rating", "Revenue (Millions)",
		},
	}

	return Preset{
		Name:      config.PresetMovies,
		SourceURL: "https://raw.githubusercontent.com/peetck/IMDB-Top1000-Movies/master/IMDB-Movie-Data.csv",
		Schema:    schema,
	}
}

// PresetFromConfig 根据配置解析预设并应用覆盖项
func PresetFromConfig(cfg config.DatasetConfig) (Preset, error) {
	var preset Preset

	switch cfg.Preset {
	case "", config.PresetEnergy:
		preset = EnergyPreset()
	case config.PresetMovies:
		preset = MoviesPreset()
	default:
		return Preset{}, fmt.Errorf("%w: %s", config.ErrUnknownPreset, cfg.Preset)
	}

	if cfg.SourceURL != "" {
		preset.SourceURL = cfg.SourceURL
	}
	if cfg.FallbackPath != "" {
		preset.FallbackPath = cfg.FallbackPath
	}

	return preset, nil
}
