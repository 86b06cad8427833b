package choices_test

import (
	"fmt"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/choices/pkg/choices"
)

type date struct {
	Year  int
	Month time.Month
	Day   int
}

type mealTime struct {
	Hour, Minute int
}

func ints(args []any, n int) ([]int, error) {
	if len(args) > n {
		return nil, fmt.Errorf("expected at most %d arguments, got %d", n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, ok := a.(int)
		if !ok {
			return nil, fmt.Errorf("argument %d: want int, got %T", i, a)
		}
		out[i] = v
	}
	return out, nil
}

func newDate(args ...any) (any, error) {
	v, err := ints(args, 3)
	if err != nil {
		return nil, err
	}
	return date{Year: v[0], Month: time.Month(v[1]), Day: v[2]}, nil
}

func newMealTime(args ...any) (any, error) {
	v, err := ints(args, 2)
	if err != nil {
		return nil, err
	}
	return mealTime{Hour: v[0], Minute: v[1]}, nil
}

func parseAddr(args ...any) (any, error) {
	s, ok := args[0].(string)
	if !ok || len(args) != 1 {
		return nil, fmt.Errorf("want one address string")
	}
	return netip.ParseAddr(s)
}

func parsePrefix(args ...any) (any, error) {
	s, ok := args[0].(string)
	if !ok || len(args) != 1 {
		return nil, fmt.Errorf("want one prefix string")
	}
	return netip.ParsePrefix(s)
}

var (
	separator = choices.Must(choices.New[[1]byte]("Separator",
		choices.Def("FS", [1]byte{0x1c}, "File Separator"),
		choices.Def("GS", [1]byte{0x1d}, "Group Separator"),
		choices.Def("RS", [1]byte{0x1e}, "Record Separator"),
		choices.Def("US", [1]byte{0x1f}, "Unit Separator"),
	))

	constants = choices.Must(choices.New[float64]("Constants",
		choices.Def("PI", 3.141592653589793, "π"),
		choices.Def("TAU", 6.283185307179586, "τ"),
	))

	moonLandings = choices.Must(choices.New[date]("MoonLandings",
		choices.WithConstructor(newDate),
		choices.Def("APOLLO_11", 1969, 7, 20, "Apollo 11 (Eagle)"),
		choices.Def("APOLLO_12", 1969, 11, 19, "Apollo 12 (Intrepid)"),
		choices.Def("APOLLO_14", 1971, 2, 5, "Apollo 14 (Antares)"),
		choices.Def("APOLLO_15", 1971, 7, 30, "Apollo 15 (Falcon)"),
		choices.Def("APOLLO_16", 1972, 4, 21, "Apollo 16 (Orion)"),
		choices.Def("APOLLO_17", 1972, 12, 11, "Apollo 17 (Challenger)"),
	))

	mealTimes = choices.Must(choices.New[mealTime]("MealTimes",
		choices.WithConstructor(newMealTime),
		choices.Def("BREAKFAST", 7, 0),
		choices.Def("LUNCH", 13, 0),
		choices.Def("DINNER", 18, 30),
	))

	frequency = choices.Must(choices.New[time.Duration]("Frequency",
		choices.Def("WEEK", 7*24*time.Hour, "Week"),
		choices.Def("DAY", 24*time.Hour, "Day"),
		choices.Def("HOUR", time.Hour, "Hour"),
		choices.Def("MINUTE", time.Minute, "Hour"),
		choices.Def("SECOND", time.Second, "Second"),
	))

	ipv4Address = choices.Must(choices.New[netip.Addr]("IPv4Address",
		choices.WithConstructor(parseAddr),
		choices.Def("LOCALHOST", "127.0.0.1", "Localhost"),
		choices.Def("GATEWAY", "192.168.0.1", "Gateway"),
		choices.Def("BROADCAST", "192.168.0.255", "Broadcast"),
	))

	ipv6Address = choices.Must(choices.New[netip.Addr]("IPv6Address",
		choices.WithConstructor(parseAddr),
		choices.Def("LOCALHOST", "::1", "Localhost"),
		choices.Def("UNSPECIFIED", "::", "Unspecified"),
	))

	ipv4Network = choices.Must(choices.New[netip.Prefix]("IPv4Network",
		choices.WithConstructor(parsePrefix),
		choices.Def("LOOPBACK", "127.0.0.0/8", "Loopback"),
		choices.Def("LINK_LOCAL", "169.254.0.0/16", "Link-Local"),
		choices.Def("PRIVATE_USE_A", "10.0.0.0/8", "Private-Use (Class A)"),
	))

	ipv6Network = choices.Must(choices.New[netip.Prefix]("IPv6Network",
		choices.WithConstructor(parsePrefix),
		choices.Def("LOOPBACK", "::1/128", "Loopback"),
		choices.Def("UNSPECIFIED", "::/128", "Unspecified"),
		choices.Def("UNIQUE_LOCAL", "fc00::/7", "Unique-Local"),
		choices.Def("LINK_LOCAL_UNICAST", "fe80::/10", "Link-Local Unicast"),
	))
)

func TestCustomChoices_LabelsValid(t *testing.T) {
	enums := []choices.Describer{
		separator, constants, moonLandings, mealTimes, frequency,
		ipv4Address, ipv6Address, ipv4Network, ipv6Network,
	}
	for _, e := range enums {
		d := e.Describe()
		t.Run(d.Name, func(t *testing.T) {
			for _, m := range d.Members {
				require.NotNil(t, m.Label)
				assert.NotEmpty(t, m.Label.String())
			}
		})
	}
}

func TestCustomChoices_Lookup(t *testing.T) {
	apollo11 := member(t, moonLandings, "APOLLO_11")
	assert.Equal(t, date{1969, time.July, 20}, apollo11.Value())
	assert.Same(t, apollo11, moonLandings.Of(date{1969, time.July, 20}))

	assert.Equal(t, "Breakfast", member(t, mealTimes, "BREAKFAST").Label().String())
	assert.Equal(t, "π", member(t, constants, "PI").Label().String())
	assert.Same(t, member(t, constants, "PI"), constants.Of(3.141592653589793))
	assert.Same(t, member(t, separator, "GS"), separator.Of([1]byte{0x1d}))

	localhost := member(t, ipv4Address, "LOCALHOST")
	assert.Same(t, localhost, ipv4Address.Of(netip.MustParseAddr("127.0.0.1")))
	assert.Equal(t, "127.0.0.1", localhost.String())
	assert.Same(t, member(t, ipv6Network, "UNIQUE_LOCAL"), ipv6Network.Of(netip.MustParsePrefix("fc00::/7")))

	assert.Same(t, member(t, frequency, "HOUR"), frequency.Of(time.Hour))
	assert.Equal(t, choices.KindInteger, frequency.Kind())
}

func TestCustomChoices_ConstructorErrors(t *testing.T) {
	_, err := choices.New[date]("Broken",
		choices.WithConstructor(newDate),
		choices.Def("BAD", 1969, "July", 20, "Bad"),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, choices.ErrDefinition)
	assert.Contains(t, err.Error(), "Broken.BAD")

	_, err = choices.New[date]("WrongType",
		choices.WithConstructor(func(...any) (any, error) { return "not a date", nil }),
		choices.Def("BAD", 1),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constructor returned string")
}

func TestCustomChoices_NoAutoValue(t *testing.T) {
	_, err := choices.New[float64]("Constants", choices.Def("PI"))
	require.Error(t, err)
	assert.ErrorIs(t, err, choices.ErrDefinition)
	assert.Contains(t, err.Error(), "no automatic value")
}

func TestUnsupportedBaseTypes(t *testing.T) {
	tests := []struct {
		name    string
		build   func() error
		wantErr string
	}{
		{
			name: "bool",
			build: func() error {
				_, err := choices.New[bool]("Boolean")
				return err
			},
			wantErr: "type 'bool' is not an acceptable base type",
		},
		{
			name: "timezone",
			build: func() error {
				_, err := choices.New[*time.Location]("Timezone")
				return err
			},
			wantErr: "type '*time.Location' is not an acceptable base type",
		},
		{
			name: "time with location pointer",
			build: func() error {
				_, err := choices.New[time.Time]("DateAndTime")
				return err
			},
			wantErr: "type 'time.Time' is not an acceptable base type",
		},
		{
			name: "interface",
			build: func() error {
				_, err := choices.New[any]("Anything")
				return err
			},
			wantErr: "type 'interface {}' is not an acceptable base type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, choices.ErrDefinition)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
