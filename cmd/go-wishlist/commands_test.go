package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
	"github.com/tartampluch/go-wishlist/internal/store"
)

var testNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

// runCmd executes the command tree against a headless app and returns stdout.
func runCmd(t *testing.T, a fyne.App, args ...string) (string, error) {
	t.Helper()
	opts := &cliOptions{
		newApp: func() fyne.App { return a },
		clock:  engine.FixedClock(testNow),
	}
	cmd := newRootCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := runCmd(t, test.NewTempApp(t), "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, config.AppName+" version "+config.Version))
}

func TestListCmd_SeedsOnFirstRun(t *testing.T) {
	out, err := runCmd(t, test.NewTempApp(t), config.CmdList)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], config.NoMarker+"Mamá"))
	assert.True(t, strings.HasSuffix(lines[0], " 14"))
	assert.True(t, strings.HasSuffix(lines[1], " 205"))
}

func TestListCmd_FavoritesAndUnscheduled(t *testing.T) {
	a := test.NewTempApp(t)
	people := engine.SeedPeople()
	people[1].IsFavorite = true
	people = append(people, engine.Person{ID: "person-3", Name: "Abuelo", Birthday: "en verano"})
	require.NoError(t, store.NewPreferencesStorage(a.Preferences()).Save(people))

	out, err := runCmd(t, a, config.CmdList)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], config.FavoriteMarker+"Juan"), "Favorites come first")
	assert.True(t, strings.HasPrefix(lines[2], config.NoMarker+"Abuelo"))
	assert.True(t, strings.HasSuffix(lines[2], " "+config.ListUnscheduled), "Unscheduled people sort last")
}

func TestShareCmd(t *testing.T) {
	a := test.NewTempApp(t)

	out, err := runCmd(t, a, "share", "mamá")
	require.NoError(t, err)
	assert.Equal(t, engine.ShareText(engine.SeedPeople()[0]), out)

	_, err = runCmd(t, a, "share", "Nadie")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPersonNotFound)

	_, err = runCmd(t, a, "share")
	assert.Error(t, err, "A name is required")
}

func TestFeedCmd(t *testing.T) {
	a := test.NewTempApp(t)

	out, err := runCmd(t, a, config.CmdFeed)
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.NotContains(t, out, "BEGIN:VALARM")

	a.Preferences().SetBool(config.PrefReminderEnabled, true)
	a.Preferences().SetInt(config.PrefReminderValue, 2)

	out, err = runCmd(t, a, config.CmdFeed)
	require.NoError(t, err)
	assert.Contains(t, out, "TRIGGER:-P2D")
}

func TestFindPerson(t *testing.T) {
	people := engine.SeedPeople()

	p, ok := findPerson(people, "  JUAN ")
	require.True(t, ok)
	assert.Equal(t, "person-2", p.ID)

	_, ok = findPerson(people, "Juana")
	assert.False(t, ok)
}
