package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxCmd(t *testing.T) {
	cmd := txCmd()

	assert.Equal(t, "tx", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	subcommands := []string{"add", "list", "update", "delete"}
	for _, name := range subcommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "expected subcommand %q", name)
	}
}

func TestAddTxCmd_Flags(t *testing.T) {
	cmd := addTxCmd()

	typeFlag := cmd.Flags().Lookup("type")
	require.NotNil(t, typeFlag)
	assert.Equal(t, "t", typeFlag.Shorthand)
	assert.Equal(t, "expense", typeFlag.DefValue)

	categoryFlag := cmd.Flags().Lookup("category")
	require.NotNil(t, categoryFlag)
	assert.Equal(t, "c", categoryFlag.Shorthand)

	assert.NotNil(t, cmd.Flags().Lookup("desc"))
	assert.NotNil(t, cmd.Flags().Lookup("date"))
}

func TestListTxCmd_Flags(t *testing.T) {
	cmd := listTxCmd()

	for flag, shorthand := range map[string]string{
		"month":    "m",
		"category": "c",
		"type":     "t",
	} {
		f := cmd.Flags().Lookup(flag)
		require.NotNil(t, f, "expected flag %q", flag)
		assert.Equal(t, shorthand, f.Shorthand)
	}
}

func TestUpdateTxCmd_Flags(t *testing.T) {
	cmd := updateTxCmd()

	for _, flag := range []string{"amount", "category", "desc", "date", "type"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "expected flag %q", flag)
	}
}

func TestCategoriesCmd(t *testing.T) {
	cmd := categoriesCmd()

	assert.Equal(t, "categories", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	subcommands := []string{"list", "add", "update", "delete"}
	for _, name := range subcommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "expected subcommand %q", name)
	}
}

func TestAddCategoryCmd_Flags(t *testing.T) {
	cmd := addCategoryCmd()

	typeFlag := cmd.Flags().Lookup("type")
	require.NotNil(t, typeFlag)
	assert.Equal(t, "expense", typeFlag.DefValue)

	budgetFlag := cmd.Flags().Lookup("budget")
	require.NotNil(t, budgetFlag)
	assert.Equal(t, "b", budgetFlag.Shorthand)

	assert.NotNil(t, cmd.Flags().Lookup("icon"))
	assert.NotNil(t, cmd.Flags().Lookup("color"))
}

func TestStatsCmd_Flags(t *testing.T) {
	cmd := statsCmd()

	monthFlag := cmd.Flags().Lookup("month")
	require.NotNil(t, monthFlag)
	assert.Equal(t, "m", monthFlag.Shorthand)
}

func TestSeedCmd_Flags(t *testing.T) {
	cmd := seedCmd()

	demoFlag := cmd.Flags().Lookup("demo")
	require.NotNil(t, demoFlag)
	assert.Equal(t, "false", demoFlag.DefValue)

	monthsFlag := cmd.Flags().Lookup("months")
	require.NotNil(t, monthsFlag)
	assert.Equal(t, "3", monthsFlag.DefValue)
}

func TestResetCmd_Flags(t *testing.T) {
	cmd := resetCmd()

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
}

func TestMigrateCmd_Flags(t *testing.T) {
	cmd := migrateCmd()

	statusFlag := cmd.Flags().Lookup("status")
	require.NotNil(t, statusFlag)
	assert.Equal(t, "false", statusFlag.DefValue)
}
