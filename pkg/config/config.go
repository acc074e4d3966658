package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Period holds the display times of a period, it is serialized as ["09:00", "10:00"]
type Period struct {
	Start string `validate:"required"`
	End   string `validate:"required"`
}

func (period Period) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{period.Start, period.End})
}

func (period Period) MarshalYAML() (any, error) {
	return []string{period.Start, period.End}, nil
}

// SchedulingRules are institution rules kept in the configuration, the search only enforces hard constraints
type SchedulingRules struct {
	MaxClassesPerDay       int  `mapstructure:"max_classes_per_day" json:"max_classes_per_day" yaml:"max_classes_per_day" validate:"min=1"`
	MinBreakBetweenClasses int  `mapstructure:"min_break_between_classes" json:"min_break_between_classes" yaml:"min_break_between_classes" validate:"min=0"`
	MaxConsecutiveClasses  int  `mapstructure:"max_consecutive_classes" json:"max_consecutive_classes" yaml:"max_consecutive_classes" validate:"min=1"`
	PreferMorningForCore   bool `mapstructure:"prefer_morning_for_core" json:"prefer_morning_for_core" yaml:"prefer_morning_for_core"`
	AvoidSingleClassDays   bool `mapstructure:"avoid_single_class_days" json:"avoid_single_class_days" yaml:"avoid_single_class_days"`
	DistributeEvenly       bool `mapstructure:"distribute_evenly" json:"distribute_evenly" yaml:"distribute_evenly"`
	PreferDepartmentRooms  bool `mapstructure:"prefer_department_rooms" json:"prefer_department_rooms" yaml:"prefer_department_rooms"`
	LabCoursesRequireLabs  bool `mapstructure:"lab_courses_require_labs" json:"lab_courses_require_labs" yaml:"lab_courses_require_labs"`
}

type OptimizationWeights struct {
	NoGaps            float64 `mapstructure:"no_gaps" json:"no_gaps" yaml:"no_gaps" validate:"min=0,max=1"`
	TeacherPreference float64 `mapstructure:"teacher_preference" json:"teacher_preference" yaml:"teacher_preference" validate:"min=0,max=1"`
	CompactSchedule   float64 `mapstructure:"compact_schedule" json:"compact_schedule" yaml:"compact_schedule" validate:"min=0,max=1"`
	RoomDistance      float64 `mapstructure:"room_distance" json:"room_distance" yaml:"room_distance" validate:"min=0,max=1"`
}

type GenerationConfig struct {
	MaxAttempts int     `mapstructure:"max_attempts" json:"max_attempts" yaml:"max_attempts" validate:"min=1"`
	Seed        *uint64 `mapstructure:"seed" json:"seed,omitempty" yaml:"seed,omitempty"`
	Strategy    string  `mapstructure:"strategy" json:"strategy" yaml:"strategy" validate:"oneof=backtracking pure postponed"`
	Solver      string  `mapstructure:"solver" json:"solver" yaml:"solver" validate:"oneof=gini kissat minisat"`
}

// SolverPaths locates the executables of external SAT solvers
type SolverPaths struct {
	Kissat  string `mapstructure:"kissat_path" json:"kissat_path" yaml:"kissat_path"`
	Minisat string `mapstructure:"minisat_path" json:"minisat_path" yaml:"minisat_path"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format      string `mapstructure:"format" json:"format" yaml:"format" validate:"oneof=json console"`
	Development bool   `mapstructure:"development" json:"development" yaml:"development"`
}

type Config struct {
	Days           []string       `mapstructure:"days" json:"days" yaml:"days" validate:"required,min=1,unique,dive,weekday"`
	PeriodsPerDay  int            `mapstructure:"periods_per_day" json:"periods_per_day" yaml:"periods_per_day" validate:"min=1"`
	PeriodDuration int            `mapstructure:"period_duration" json:"period_duration" yaml:"period_duration" validate:"min=1"`
	SlotTimes      map[int]Period `mapstructure:"time_slots" json:"time_slots" yaml:"time_slots" validate:"required,dive"`

	SchedulingRules `mapstructure:",squash" yaml:",inline"`

	OptimizationWeights OptimizationWeights `mapstructure:"optimization_weights" json:"optimization_weights" yaml:"optimization_weights"`
	Generation          GenerationConfig    `mapstructure:"generation" json:"generation" yaml:"generation"`
	Solvers             SolverPaths         `mapstructure:"solvers" json:"solvers" yaml:"solvers"`
	Log                 LogConfig           `mapstructure:"log" json:"log" yaml:"log"`
}

func Default() *Config {
	return &Config{
		Days:           []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		PeriodsPerDay:  6,
		PeriodDuration: 60,
		SlotTimes: map[int]Period{
			1: {Start: "09:00", End: "10:00"},
			2: {Start: "10:00", End: "11:00"},
			3: {Start: "11:00", End: "12:00"},
			4: {Start: "12:00", End: "13:00"},
			5: {Start: "14:00", End: "15:00"},
			6: {Start: "15:00", End: "16:00"},
		},
		SchedulingRules: SchedulingRules{
			MaxClassesPerDay:       6,
			MinBreakBetweenClasses: 0,
			MaxConsecutiveClasses:  3,
			PreferMorningForCore:   true,
			AvoidSingleClassDays:   true,
			DistributeEvenly:       true,
			PreferDepartmentRooms:  true,
			LabCoursesRequireLabs:  true,
		},
		OptimizationWeights: OptimizationWeights{
			NoGaps:            0.3,
			TeacherPreference: 0.2,
			CompactSchedule:   0.3,
			RoomDistance:      0.2,
		},
		Generation: GenerationConfig{
			MaxAttempts: model.DefaultMaxAttempts,
			Strategy:    "backtracking",
			Solver:      "gini",
		},
		Solvers: SolverPaths{
			Kissat:  "kissat",
			Minisat: "minisat",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a JSON or YAML (by extension) file on top of the defaults. Keys absent from the file keep their default value,
// lists and maps present in the file replace the defaults entirely.
func Load(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var raw map[string]any
	if isYAML(path) {
		err = yaml.Unmarshal(bytes, &raw)
	} else {
		err = json.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse config file %v: %w", path, err)
	}

	cfg := Default()
	if err := Decode(raw, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", path, err)
	}
	return cfg, nil
}

// Decode applies a generic map (as produced by a JSON or YAML decoder) onto cfg
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       periodHook,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("cannot decode config: %w", err)
	}
	return nil
}

// periodHook turns ["09:00", "10:00"] into a Period
func periodHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Period{}) || (from.Kind() != reflect.Slice && from.Kind() != reflect.Array) {
		return data, nil
	}

	values := reflect.ValueOf(data)
	if values.Len() != 2 {
		return nil, fmt.Errorf("a period needs exactly a start and an end time, got %v", data)
	}
	return Period{
		Start: fmt.Sprint(values.Index(0).Interface()),
		End:   fmt.Sprint(values.Index(1).Interface()),
	}, nil
}

// Save writes the configuration as JSON or YAML depending on the file extension
func (cfg *Config) Save(path string) error {
	var (
		bytes []byte
		err   error
	)
	if isYAML(path) {
		bytes, err = yaml.Marshal(cfg)
	} else {
		bytes, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, err := model.ParseWeekday(fl.Field().String())
		return err == nil
	})
	return v
}

func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}

	for number, period := range cfg.SlotTimes {
		if number < 1 {
			return fmt.Errorf("period numbers start at 1, got %d", number)
		}
		start, err := time.Parse("15:04", period.Start)
		if err != nil {
			return fmt.Errorf("period %d: invalid start time %q", number, period.Start)
		}
		end, err := time.Parse("15:04", period.End)
		if err != nil {
			return fmt.Errorf("period %d: invalid end time %q", number, period.End)
		}
		if !end.After(start) {
			return fmt.Errorf("period %d ends before it starts", number)
		}
	}
	return nil
}

// TimeSlots derives the slot universe: every configured day times every period of 1..PeriodsPerDay that has times defined
func (cfg *Config) TimeSlots() ([]model.TimeSlot, error) {
	slots := make([]model.TimeSlot, 0, len(cfg.Days)*cfg.PeriodsPerDay)
	for _, name := range cfg.Days {
		day, err := model.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		for number := 1; number <= cfg.PeriodsPerDay; number++ {
			period, ok := cfg.SlotTimes[number]
			if !ok {
				continue
			}
			slots = append(slots, model.NewTimeSlot(day, number, period.Start, period.End))
		}
	}
	return slots, nil
}

func (cfg *Config) String() string {
	return fmt.Sprintf("TimetableConfig(days=%d, periods=%d, max_classes=%d)", len(cfg.Days), cfg.PeriodsPerDay, cfg.MaxClassesPerDay)
}

func isYAML(path string) bool {
	return slices.Contains([]string{".yaml", ".yml"}, strings.ToLower(filepath.Ext(path)))
}
