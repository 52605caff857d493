package export

import (
	"go.uber.org/zap"

	"github.com/ByLCY/labelgen/label"
	"github.com/ByLCY/labelgen/layout"
)

// GlyphChecker 报告字体缺少哪些字符的字形。canvas 字体簿实现了它。
type GlyphChecker interface {
	MissingGlyphs(font layout.Font, text string) []rune
}

type themedText struct {
	field string
	font  layout.Font
	text  string
}

// labelTexts 列出一次绘制会用到的全部文案及其字体。
func labelTexts(th layout.Theme, rec label.Record) []themedText {
	return []themedText{
		{"caption.productName", th.Product.LabelFont, th.Labels.ProductName},
		{"caption.model", th.Product.LabelFont, th.Labels.Model},
		{"caption.date", th.Product.LabelFont, th.Labels.Date},
		{"caption.inspected", th.Stamp.CaptionFont, th.Labels.Inspected},
		{"caption.address", th.Bottom.GridLabelFont, th.Labels.Address},
		{"caption.mail", th.Bottom.GridLabelFont, th.Labels.Mail},
		{"productName", th.Product.NameFont, rec.ProductName},
		{"productModel", th.Product.ValueFont, rec.ProductModel},
		{"productionYear", th.Product.ValueFont, rec.ProductionYear},
		{"qcStatus", th.Stamp.StatusFont, rec.QCStatus},
		{"qcDate", th.Stamp.DateFont, rec.QCDate},
		{"companyName", th.Bottom.CompanyFont, rec.CompanyName},
		{"website", th.Bottom.WebsiteFont, rec.Website},
		{"address", th.Bottom.AddressFont, rec.Address},
		{"email", th.Bottom.EmailFont, rec.Email},
	}
}

// warnMissingGlyphs 在字体缺字时记一条 Warn。缺字会被画成方框，导出照常进行。
func (e *Exporter) warnMissingGlyphs(j *job, rec label.Record) {
	checker, ok := e.fonts.(GlyphChecker)
	if !ok {
		return
	}
	var fields []string
	var missing []rune
	seen := map[rune]bool{}
	for _, t := range labelTexts(e.theme, rec) {
		runes := checker.MissingGlyphs(t.font, t.text)
		if len(runes) == 0 {
			continue
		}
		fields = append(fields, t.field)
		for _, r := range runes {
			if !seen[r] {
				seen[r] = true
				missing = append(missing, r)
			}
		}
	}
	if len(fields) > 0 {
		j.logger.Warn("fonts have no glyphs for label text; configure fonts.* to cover them",
			zap.Strings("fields", fields),
			zap.String("missing", string(missing)))
	}
}
