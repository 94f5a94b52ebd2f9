package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/image-splitter-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget) // constructs widgets inside parent
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by json field name
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget) {
	c := v.cfg
	row := 0
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(10))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("threshold", "Threshold (0-255)", fmt.Sprintf("%d", c.Threshold))
	makeRow("min_area", "Min Area", fmt.Sprintf("%.0f", c.MinArea))
	makeRow("min_width", "Min Width", fmt.Sprintf("%d", c.MinWidth))
	makeRow("min_height", "Min Height", fmt.Sprintf("%d", c.MinHeight))
	makeRow("row_bucket", "Row Bucket Px", fmt.Sprintf("%d", c.RowBucket))
	makeRow("margin", "Crop Margin Px", fmt.Sprintf("%d", c.Margin))
	makeRow("grid_width", "Grid Width", fmt.Sprintf("%d", c.GridWidth))
	makeRow("start_delay_ms", "Start Delay Ms", fmt.Sprintf("%d", c.StartDelayMs))
	makeRow("step_delay_ms", "Step Delay Ms", fmt.Sprintf("%d", c.StepDelayMs))
	makeRow("gallery_columns", "Gallery Columns", fmt.Sprintf("%d", c.GalleryColumns))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	values := make(map[string]string, len(v.widgets))
	for id, w := range v.widgets {
		values[id] = v.text(w)
	}
	cfg := applyFields(*v.cfg, values)
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}

// applyFields parses form values into a copy of cfg. Unparsable fields keep
// their previous value; out-of-range values are reset by Validate.
func applyFields(cfg config.Config, values map[string]string) config.Config {
	assignInt := func(id string, dst *int) {
		if i, ok := parseIntField(values[id]); ok {
			*dst = i
		}
	}
	assignInt("threshold", &cfg.Threshold)
	if f, ok := parseFloatField(values["min_area"]); ok {
		cfg.MinArea = f
	}
	assignInt("min_width", &cfg.MinWidth)
	assignInt("min_height", &cfg.MinHeight)
	assignInt("row_bucket", &cfg.RowBucket)
	assignInt("margin", &cfg.Margin)
	assignInt("grid_width", &cfg.GridWidth)
	assignInt("start_delay_ms", &cfg.StartDelayMs)
	assignInt("step_delay_ms", &cfg.StepDelayMs)
	assignInt("gallery_columns", &cfg.GalleryColumns)
	_ = cfg.Validate()
	return cfg
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
