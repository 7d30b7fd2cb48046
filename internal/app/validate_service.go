package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/dailyctl/internal/models"
)

// ValidateExitCode is the exit status of a failed schema validation.
const ValidateExitCode = 2

// legacyFieldHints maps field names that drift in over time to the
// correction the author should apply.
var legacyFieldHints = map[string]string{
	"source":    "use 'sources' (array of {name, url}) instead of 'source'",
	"published": "use 'time' instead of 'published'",
	"summary":   "use 'what' + 'why' instead of 'summary'",
	"category":  "remove 'category' (section key implies the category)",
}

// requiredSelfCheckKeys are self_check sub-fields whose absence only
// warns, never blocks.
var requiredSelfCheckKeys = []string{"coverage_analysis", "freshness_check", "bird_status", "dedupe_keys"}

// ValidateReport collects the non-fatal findings of a validation pass.
type ValidateReport struct {
	Warnings []string
}

func (r *ValidateReport) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateService checks data/daily.json for format drift: required
// fields present and non-empty, item counts in range, source links
// attached. Validation is strict because it gates the push pipeline.
// It operates on the decoded JSON shape, not the typed model, so that
// wrong types are reported as findings instead of decode errors.
type ValidateService struct {
	// now is overridable in tests for the freshness check.
	now func() time.Time
}

// NewValidateService creates a new ValidateService.
func NewValidateService() *ValidateService {
	return &ValidateService{now: time.Now}
}

// ValidateFile validates the daily report data file. The error is the
// first blocking finding; the report carries warnings regardless.
func (s *ValidateService) ValidateFile(path string) (*ValidateReport, error) {
	report := &ValidateReport{}

	data, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("missing %s", path)
	}

	var daily map[string]any
	if err := json.Unmarshal(data, &daily); err != nil {
		return report, fmt.Errorf("invalid JSON: %v", err)
	}

	return report, s.validateDaily(daily, report)
}

func (s *ValidateService) validateDaily(daily map[string]any, report *ValidateReport) error {
	if _, err := mustStr(daily, "date", "daily"); err != nil {
		return err
	}

	headlines, err := mustList(daily, "headlines", "daily")
	if err != nil {
		return err
	}
	if len(headlines) < 3 || len(headlines) > 5 {
		return fmt.Errorf("daily.headlines must be 3-5 items (got %d)", len(headlines))
	}
	for idx, it := range headlines {
		if err := s.validateItem(it, fmt.Sprintf("daily.headlines[%d]", idx+1), report); err != nil {
			return err
		}
	}

	sections, ok := daily["sections"].(map[string]any)
	if !ok {
		return fmt.Errorf("daily.sections must be object")
	}
	for _, key := range models.RequiredSections {
		items, ok := sections[key].([]any)
		if !ok {
			return fmt.Errorf("daily.sections.%s must be list (can be empty)", key)
		}
		for idx, it := range items {
			if err := s.validateItem(it, fmt.Sprintf("daily.sections.%s[%d]", key, idx+1), report); err != nil {
				return err
			}
		}
	}

	hasHighlights, err := s.validateXHighlights(daily, report)
	if err != nil {
		return err
	}
	if !hasHighlights && !hasAnyXLink(daily) {
		report.warnf("no X/Twitter source found (x_highlights empty, no x.com links in sources)")
	}

	if err := s.validateSummary(daily); err != nil {
		return err
	}

	s.checkSelfCheck(daily, report)
	return nil
}

func (s *ValidateService) validateItem(v any, ctx string, report *ValidateReport) error {
	it, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%s: item must be object", ctx)
	}

	for oldKey, hint := range legacyFieldHints {
		if _, found := it[oldKey]; found {
			return fmt.Errorf("%s: found legacy field '%s' - %s", ctx, oldKey, hint)
		}
	}

	if _, err := mustStr(it, "title", ctx); err != nil {
		return err
	}
	timeStr, err := mustStr(it, "time", ctx)
	if err != nil {
		return err
	}
	if _, err := mustStr(it, "what", ctx); err != nil {
		return err
	}
	if _, err := mustStr(it, "why", ctx); err != nil {
		return err
	}

	// Freshness is a prompt constraint, not a blocker. Non-standard
	// date formats skip the check.
	if dt, perr := time.Parse("2006-01-02", strings.TrimSpace(timeStr)); perr == nil {
		cutoff := s.now().UTC().Add(-48 * time.Hour)
		if dt.Before(cutoff) {
			report.warnf("%s time '%s' is older than 48h", ctx, timeStr)
		}
	}

	sources, err := mustList(it, "sources", ctx)
	if err != nil {
		return err
	}
	if len(sources) < 1 {
		return fmt.Errorf("%s: sources must have at least 1 entry", ctx)
	}
	for i, sv := range sources {
		src, ok := sv.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: sources[%d] must be object", ctx, i)
		}
		srcCtx := fmt.Sprintf("%s: sources[%d]", ctx, i)
		if _, err := mustStr(src, "name", srcCtx); err != nil {
			return err
		}
		if _, err := mustStr(src, "url", srcCtx); err != nil {
			return err
		}
	}

	return nil
}

// validateXHighlights validates the optional x_highlights block and
// reports whether it contains any entries.
func (s *ValidateService) validateXHighlights(daily map[string]any, report *ValidateReport) (bool, error) {
	v, present := daily["x_highlights"]
	if !present || v == nil {
		return false, nil
	}

	items, ok := v.([]any)
	if !ok {
		return false, fmt.Errorf("daily.x_highlights must be a list when present")
	}
	if len(items) > 20 {
		return false, fmt.Errorf("daily.x_highlights size out of range (got %d)", len(items))
	}

	for i, xv := range items {
		x, ok := xv.(map[string]any)
		if !ok {
			return false, fmt.Errorf("daily.x_highlights[%d] must be object", i+1)
		}
		ctx := fmt.Sprintf("daily.x_highlights[%d]", i+1)
		for _, key := range []string{"author", "handle", "text", "url"} {
			if _, err := mustStr(x, key, ctx); err != nil {
				return false, err
			}
		}
		for _, key := range []string{"likes", "reposts", "replies"} {
			cv, found := x[key]
			if !found {
				continue
			}
			// encoding/json decodes numbers as float64
			if f, isNum := cv.(float64); !isNum || f != float64(int64(f)) {
				return false, fmt.Errorf("%s.%s must be int", ctx, key)
			}
		}
	}

	return len(items) > 0, nil
}

func (s *ValidateService) validateSummary(daily map[string]any) error {
	summary, ok := daily["summary"].(map[string]any)
	if !ok {
		return fmt.Errorf("daily.summary must be object")
	}

	bullets, ok := summary["bullets"].([]any)
	if !ok || len(bullets) < 3 || len(bullets) > 5 {
		return fmt.Errorf("daily.summary.bullets must be 3-5 non-empty strings")
	}
	for _, b := range bullets {
		str, isStr := b.(string)
		if !isStr || strings.TrimSpace(str) == "" {
			return fmt.Errorf("daily.summary.bullets must be 3-5 non-empty strings")
		}
	}

	if _, err := mustStr(summary, "url", "daily.summary"); err != nil {
		return err
	}
	if _, err := mustStr(summary, "archiveUrl", "daily.summary"); err != nil {
		return err
	}
	return nil
}

func (s *ValidateService) checkSelfCheck(daily map[string]any, report *ValidateReport) {
	sc, ok := daily["self_check"].(map[string]any)
	if !ok || len(sc) == 0 {
		report.warnf("self_check is missing or empty")
		return
	}
	for _, key := range requiredSelfCheckKeys {
		v, found := sc[key]
		if !found {
			report.warnf("self_check.%s is missing", key)
			continue
		}
		if isEmptyValue(v) {
			report.warnf("self_check.%s is empty", key)
		}
	}
}

// hasAnyXLink reports whether any source link anywhere in the report
// points at X/Twitter.
func hasAnyXLink(daily map[string]any) bool {
	isXURL := func(it any) bool {
		item, ok := it.(map[string]any)
		if !ok {
			return false
		}
		sources, _ := item["sources"].([]any)
		for _, sv := range sources {
			src, ok := sv.(map[string]any)
			if !ok {
				continue
			}
			url, _ := src["url"].(string)
			if strings.Contains(url, "x.com/") || strings.Contains(url, "twitter.com/") {
				return true
			}
		}
		return false
	}

	headlines, _ := daily["headlines"].([]any)
	for _, it := range headlines {
		if isXURL(it) {
			return true
		}
	}
	sections, _ := daily["sections"].(map[string]any)
	for _, sv := range sections {
		items, _ := sv.([]any)
		for _, it := range items {
			if isXURL(it) {
				return true
			}
		}
	}
	return false
}

func mustStr(obj map[string]any, key, ctx string) (string, error) {
	v, _ := obj[key].(string)
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%s: missing/empty '%s'", ctx, key)
	}
	return v, nil
}

func mustList(obj map[string]any, key, ctx string) ([]any, error) {
	v, ok := obj[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%s: '%s' must be a list", ctx, key)
	}
	return v, nil
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
