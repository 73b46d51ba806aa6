package convert

import (
	"os"

	"go.uber.org/zap"

	"evostudio/config"
	"evostudio/convert/report"
	"evostudio/css"
	"evostudio/utils/images"
)

// LoadAssets reads brand logo and user stylesheet configured for reports.
// Asset which cannot be loaded is reported and skipped, documents are still
// produced without it.
func LoadAssets(cfg *config.ReportConfig, log *zap.Logger) report.Assets {
	var assets report.Assets

	if cfg.LogoPath != "" {
		logo, err := images.LoadLogo(cfg.LogoPath)
		if err != nil {
			log.Warn("Unable to load logo, continuing without it", zap.String("file", cfg.LogoPath), zap.Error(err))
		} else {
			assets.Logo = logo
		}
	}

	if cfg.StylesheetPath != "" {
		data, err := os.ReadFile(cfg.StylesheetPath)
		if err != nil {
			log.Warn("Unable to read stylesheet, continuing without it", zap.String("file", cfg.StylesheetPath), zap.Error(err))
		} else {
			sheet := css.NewSanitizer(log).Sanitize(data, cfg.StylesheetPath)
			for _, w := range sheet.Warnings {
				log.Warn("Stylesheet", zap.String("file", cfg.StylesheetPath), zap.String("problem", w))
			}
			assets.CSS = sheet.CSS
			assets.FontLinks = sheet.FontLinks
		}
	}
	return assets
}

// NewRenderer prepares report renderer from program configuration.
func NewRenderer(cfg *config.ReportConfig, log *zap.Logger, opts ...report.Option) (*report.Renderer, error) {
	return report.NewRenderer(cfg, LoadAssets(cfg, log), log, opts...)
}
