package domain

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// Page 列表分页参数（skip/limit 语义，与偏移量一致）
type Page struct {
	Skip  int
	Limit int
}

type PageLimits struct {
	Default int
	Max     int
}

func DefaultPageLimits() PageLimits {
	return PageLimits{Default: DefaultPageLimit, Max: MaxPageLimit}
}

// Clamp 超过上限的 limit 截断而不是拒绝；非正数回落到默认值
func (l PageLimits) Clamp(p Page) Page {
	def, ceil := l.Default, l.Max
	if ceil <= 0 {
		ceil = MaxPageLimit
	}
	if def <= 0 || def > ceil {
		def = ceil
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > ceil {
		p.Limit = ceil
	}
	return p
}
