package measure

import (
	"strings"
	"time"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports the numeric pull measures of a Manager as Prometheus
// gauges, read at scrape time. Measures holding other types are skipped.
type Collector struct {
	manager   *Manager
	namespace string
}

var _ prometheus.Collector = &Collector{}

func NewCollector(manager *Manager, namespace string) *Collector {
	return &Collector{manager: manager, namespace: namespace}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, key := range c.manager.PullMeasureKeys() {
		pm, ok := c.manager.PullMeasure(key)
		if !ok {
			continue
		}
		v, _ := pm.Value()
		if _, ok := numeric(v); !ok {
			continue
		}
		ch <- c.desc(key, pm, v)
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, key := range c.manager.PullMeasureKeys() {
		pm, ok := c.manager.PullMeasure(key)
		if !ok {
			continue
		}
		v, set := pm.Value()
		f, ok := numeric(v)
		if !set || !ok {
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.desc(key, pm, v), prometheus.GaugeValue, f)
	}
}

func (c *Collector) desc(key string, pm PullMeasure, v any) *prometheus.Desc {
	name := metricName(key)
	if _, ok := v.(time.Duration); ok {
		name += "_seconds"
	}
	help := pm.Description()
	if help == "" {
		help = key
	}
	return prometheus.NewDesc(prometheus.BuildFQName(c.namespace, "", name), help, nil, nil)
}

func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case time.Duration:
		return x.Seconds(), true
	}
	return 0, false
}

// metricName turns a camel case key such as currentEvaluation into
// current_evaluation. Runs of capitals stay together: IGD becomes igd.
func metricName(key string) string {
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
