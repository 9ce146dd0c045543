package components

// icon is a fixed SVG artifact registered under a stable name.
type icon struct {
	name string
	svg  string
}

func (i icon) Name() string   { return i.name }
func (i icon) Render() string { return i.svg }

// builtinIcons is the closed illustration set embeddable from document bodies.
var builtinIcons = []icon{
	{
		name: "cloud",
		svg: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" aria-hidden="true">` +
			`<path d="M6 18a4 4 0 1 1 .6-7.95 5.5 5.5 0 0 1 10.8 1.45A3.75 3.75 0 0 1 17 18H6z"/></svg>`,
	},
	{
		name: "moon",
		svg: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" aria-hidden="true">` +
			`<path d="M20 14.5A8.5 8.5 0 0 1 9.5 4 8.5 8.5 0 1 0 20 14.5z"/></svg>`,
	},
	{
		name: "rocket",
		svg: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" aria-hidden="true">` +
			`<path d="M12 2c3.5 1.5 6 5 6 9l-3 3h-6l-3-3c0-4 2.5-7.5 6-9z"/>` +
			`<path d="M9 14l-3 5 4-1.5M15 14l3 5-4-1.5"/><circle cx="12" cy="8.5" r="1.5"/></svg>`,
	},
	{
		name: "bolt",
		svg: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" aria-hidden="true">` +
			`<path d="M13 2 4.5 13.5H11L10 22l8.5-11.5H13L13 2z"/></svg>`,
	},
	{
		name: "leaf",
		svg: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" aria-hidden="true">` +
			`<path d="M5 19C5 9 11 4 20 4c0 9-5 15-15 15z"/><path d="M5 19c3-5 7-8 11-10"/></svg>`,
	},
	{
		name: "wave",
		svg: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" aria-hidden="true">` +
			`<path d="M2 12c2.5-3 5-3 7.5 0s5 3 7.5 0 3.5-2 5 0"/>` +
			`<path d="M2 17c2.5-3 5-3 7.5 0s5 3 7.5 0 3.5-2 5 0"/></svg>`,
	},
}

// Builtin returns a frozen registry populated with the builtin icon set.
func Builtin() (*Registry, error) {
	r := NewRegistry()
	for _, ic := range builtinIcons {
		if err := r.Register(ic); err != nil {
			return nil, err
		}
	}
	r.Freeze()
	return r, nil
}
