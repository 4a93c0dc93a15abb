package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"SalaryAnalysis/src/datasource/file"
	"SalaryAnalysis/src/processor"
)

// Config 结构体定义了应用程序的配置结构
type Config struct {
	DataDir       string `json:"data_dir"`       // 输入数据目录
	WageFile      string `json:"wage_file"`      // 工资表(csv/xlsx)
	InflationFile string `json:"inflation_file"` // 通胀表(csv/xlsx)
	SheetName     string `json:"sheet_name"`     // xlsx 输入的工作表名
	Encoding      string `json:"encoding"`       // csv 编码
	Delimiter     string `json:"delimiter"`      // csv 分隔符

	Period struct {
		From int `json:"from"`
		To   int `json:"to"`
	} `json:"period"`

	OutputDir  string `json:"output_dir"`  // 报告输出目录
	ReportName string `json:"report_name"` // 报告文件名(不含扩展名)
	Locale     string `json:"locale"`      // 报告数字格式的语言

	LogName  string `json:"log_name"`
	LogLevel string `json:"log_level"`

	Watch struct {
		Enabled  bool     `json:"enabled"`
		Debounce Duration `json:"debounce"`
	} `json:"watch"`
	Schedule string `json:"schedule"` // cron 表达式，如 "@every 1h"，空则不启用
}

// DataConfig 输入表列名映射
type DataConfig struct {
	YearColumn      string            `json:"year_column"`
	InflationColumn string            `json:"inflation_column"`
	Sectors         map[string]string `json:"sectors"` // 行业 -> 列名
	HeaderRow       int               `json:"header_row"`
}

var (
	once               sync.Once
	instance           *Config
	dataConfigInstance *DataConfig
	loadErr            error
)

// LoadConfig 读取配置，进程内只加载一次
func LoadConfig(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	once.Do(func() {
		instance, dataConfigInstance, loadErr = loadConfigs(jsonFolder, jsonFile, dataJsonFile)
	})
	return instance, dataConfigInstance, loadErr
}

func loadConfigs(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	configFile := filepath.Join(jsonFolder, jsonFile)
	dataConfigFile := filepath.Join(jsonFolder, dataJsonFile)

	configData, err := readFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}

	dataConfigData, err := readFile(dataConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read data config: %w", err)
	}

	cfgChan := make(chan *Config, 1)
	dcfgChan := make(chan *DataConfig, 1)
	errChan := make(chan error, 2)

	go parseConfig(configData, cfgChan, errChan)
	go parseDataConfig(dataConfigData, dcfgChan, errChan)

	cfg, dcfg, err := waitForResults(cfgChan, dcfgChan, errChan)
	if err != nil {
		return nil, nil, err
	}

	cfg.applyEnv()
	cfg.setDefaults()
	dcfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := dcfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, dcfg, nil
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte, resultChan chan<- *Config, errChan chan<- error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		errChan <- fmt.Errorf("parse Config: %w", err)
		return
	}
	resultChan <- &cfg
}

func parseDataConfig(data []byte, resultChan chan<- *DataConfig, errChan chan<- error) {
	var dcfg DataConfig
	if err := json.Unmarshal(data, &dcfg); err != nil {
		errChan <- fmt.Errorf("parse DataConfig: %w", err)
		return
	}
	resultChan <- &dcfg
}

func waitForResults(
	cfgChan <-chan *Config,
	dcfgChan <-chan *DataConfig,
	errChan <-chan error,
) (*Config, *DataConfig, error) {
	var (
		cfg    *Config
		dcfg   *DataConfig
		errors []error
	)

	for i := 0; i < 2; i++ {
		select {
		case c := <-cfgChan:
			cfg = c
		case d := <-dcfgChan:
			dcfg = d
		case err := <-errChan:
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, nil, combineErrors(errors)
	}

	if cfg == nil || dcfg == nil {
		return nil, nil, fmt.Errorf("config partially loaded")
	}

	return cfg, dcfg, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	msg := "config load failed:"
	for _, err := range errs {
		msg = fmt.Sprintf("%s\n- %v", msg, err)
	}
	return fmt.Errorf("%s", msg)
}

// applyEnv 用 SALARY_* 环境变量覆盖文件中的配置
func (c *Config) applyEnv() {
	if v := os.Getenv("SALARY_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("SALARY_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("SALARY_ENCODING"); v != "" {
		c.Encoding = v
	}
	if v := os.Getenv("SALARY_LOG_NAME"); v != "" {
		c.LogName = v
	}
	if v := os.Getenv("SALARY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SALARY_SCHEDULE"); v != "" {
		c.Schedule = v
	}
	if v, err := strconv.ParseBool(os.Getenv("SALARY_WATCH")); err == nil {
		c.Watch.Enabled = v
	}
}

func (c *Config) setDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.WageFile == "" {
		c.WageFile = "salary.csv"
	}
	if c.InflationFile == "" {
		c.InflationFile = "inflation.csv"
	}
	if c.Delimiter == "" {
		c.Delimiter = ","
	}
	if c.Period.From == 0 && c.Period.To == 0 {
		c.Period.From = int(processor.DefaultPeriod.From)
		c.Period.To = int(processor.DefaultPeriod.To)
	}
	if c.OutputDir == "" {
		c.OutputDir = "report"
	}
	if c.ReportName == "" {
		c.ReportName = "salary_report"
	}
	if c.Locale == "" {
		c.Locale = "ru"
	}
	if c.LogName == "" {
		c.LogName = "app.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(500 * time.Millisecond)
	}
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	if c.Period.To < c.Period.From {
		return fmt.Errorf("period %d-%d is empty", c.Period.From, c.Period.To)
	}
	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return nil
}

func (dc *DataConfig) setDefaults() {
	if dc.YearColumn == "" {
		dc.YearColumn = "Год"
	}
	if dc.InflationColumn == "" {
		dc.InflationColumn = "Всего"
	}
	if len(dc.Sectors) == 0 {
		dc.Sectors = map[string]string{
			string(processor.Education):    "Образование",
			string(processor.Construction): "Строительство",
			string(processor.Medicine):     "Здравоохранение и предоставление социальных услуг",
			string(processor.Extraction):   "Добыча полезных ископаемых",
		}
	}
}

// Validate 检查列映射
func (dc *DataConfig) Validate() error {
	var unknown []string
	for k, v := range dc.Sectors {
		if !processor.Sector(k).Valid() {
			unknown = append(unknown, k)
		}
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("sector %s: empty column name", k)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown sectors: %s", strings.Join(unknown, ", "))
	}
	for _, s := range processor.Sectors {
		if _, ok := dc.Sectors[string(s)]; !ok {
			return fmt.Errorf("sector %s: %w", s, processor.ErrMissingSector)
		}
	}
	if dc.HeaderRow < 0 {
		return fmt.Errorf("header_row must not be negative")
	}
	return nil
}

// AnalysisPeriod 返回分析区间
func (c *Config) AnalysisPeriod() processor.Period {
	return processor.Period{From: processor.Year(c.Period.From), To: processor.Year(c.Period.To)}
}

// WagePath 工资表完整路径
func (c *Config) WagePath() string { return filepath.Join(c.DataDir, c.WageFile) }

// InflationPath 通胀表完整路径
func (c *Config) InflationPath() string { return filepath.Join(c.DataDir, c.InflationFile) }

// ReadOptions 转换为读取选项
func (c *Config) ReadOptions(dc *DataConfig) file.ReadOptions {
	return file.ReadOptions{
		Delimiter: []rune(c.Delimiter)[0],
		Encoding:  c.Encoding,
		SheetName: c.SheetName,
		HeaderRow: dc.HeaderRow,
	}
}

// Columns 转换为 processor 使用的列映射
func (dc *DataConfig) Columns() processor.Columns {
	sectors := make(map[processor.Sector]string, len(dc.Sectors))
	for k, v := range dc.Sectors {
		sectors[processor.Sector(k)] = v
	}
	return processor.Columns{
		Year:      dc.YearColumn,
		Sectors:   sectors,
		Inflation: dc.InflationColumn,
	}
}

// Duration 是time.Duration的自定义包装类型
// 用于支持JSON序列化和反序列化
type Duration time.Duration

// UnmarshalJSON 实现json.Unmarshaler接口
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON 实现json.Marshaler接口
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
