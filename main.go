package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/openepi/epiwave/analysis"
	"github.com/openepi/epiwave/schema"
	"github.com/openepi/epiwave/series"
)

// report is the single JSON document written to stdout for one region.
type report struct {
	Region            string                   `json:"region,omitempty"`
	Summary           *schema.RegionSummary    `json:"summary,omitempty"`
	Waves             []schema.Wave            `json:"waves"`
	Impact            *schema.ImpactStatistics `json:"impact,omitempty"`
	ImpactUnavailable string                   `json:"impact_unavailable,omitempty"`
}

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stderr)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("epiwave")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	defaults := analysis.DefaultWaveParams()
	viper.SetDefault("analysis.trend_window", defaults.TrendWindow)
	viper.SetDefault("analysis.trend_min_periods", defaults.TrendMinPeriods)
	viper.SetDefault("analysis.min_peak_daily_cases", defaults.MinPeakDailyCases)
	viper.SetDefault("analysis.peak_merge_window_days", defaults.PeakMergeWindowDays)
	viper.SetDefault("analysis.min_wave_duration_days", defaults.MinWaveDurationDays)
}

func waveParamsFromConfig() *analysis.WaveParams {
	return &analysis.WaveParams{
		TrendWindow:         viper.GetInt("analysis.trend_window"),
		TrendMinPeriods:     viper.GetInt("analysis.trend_min_periods"),
		MinPeakDailyCases:   viper.GetFloat64("analysis.min_peak_daily_cases"),
		PeakMergeWindowDays: viper.GetInt("analysis.peak_merge_window_days"),
		MinWaveDurationDays: viper.GetInt("analysis.min_wave_duration_days"),
	}
}

func main() {
	var configFile string
	var inputFile string
	var region string

	flag.StringVar(&configFile, "c", "", "[optional] path of configuration file")
	flag.StringVar(&inputFile, "i", "", "path of the per-region daily series CSV")
	flag.StringVar(&region, "region", "", "[optional] region name echoed in the report")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	if inputFile == "" {
		log.WithField("prefix", "main").Fatal("no input file, use -i")
	}

	rows, err := series.LoadFile(inputFile)
	if err != nil {
		log.WithFields(log.Fields{"prefix": "main", "file": inputFile}).Fatalf("load series: %s", err)
	}
	log.WithFields(log.Fields{"prefix": "main", "rows": len(rows)}).Info("Loaded daily series")

	rows = series.Normalize(rows)

	out := report{
		Region: region,
		Waves:  []schema.Wave{},
	}

	if series.AllMissing(rows, func(r schema.DailyRecord) float64 { return r.NewCasesSmoothed }) {
		log.WithField("prefix", "main").Warn("no smoothed incidence column, wave detection not applicable")
	} else {
		out.Waves = analysis.DetectWaves(rows, waveParamsFromConfig())
		log.WithFields(log.Fields{"prefix": "main", "waves": len(out.Waves)}).Info("Wave detection complete")
	}

	impact, err := analysis.AnalyzeImpact(rows)
	if err != nil {
		if !errors.Is(err, analysis.ErrNotDeterminable) {
			log.WithField("prefix", "main").Fatalf("impact analysis: %s", err)
		}
		out.ImpactUnavailable = err.Error()
		log.WithField("prefix", "main").Infof("Impact analysis unavailable: %s", err)
	} else {
		out.Impact = &impact
	}

	if summary, ok := analysis.Summarize(rows, out.Waves); ok {
		out.Summary = &summary
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		log.WithField("prefix", "main").Fatalf("write report: %s", err)
	}
}
