package commands

import (
	database "banksync-server/src/db"
	"banksync-server/src/models"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "sync", "migrate"}, names)

	syncCmd, _, err := root.Find([]string{"sync"})
	require.NoError(t, err)
	assert.NotNil(t, syncCmd.Flags().Lookup("account"))
}

func TestSyncCommand_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCommand()
	root.SetArgs([]string{"sync"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug")
	assert.NoError(t, err)
	_, err = newLogger("chatty")
	assert.Error(t, err)
}

func TestInvalidateCaches(t *testing.T) {
	require.NoError(t, database.InitCache())
	t.Cleanup(func() { _ = database.ClearCache("all") })

	database.SetAccountCache("accounts:all", []models.BankAccount{})
	database.SetTransactionCache("transactions:acc-a:100", []models.BankTransaction{})

	invalidateCaches(context.Background(), models.RunSummary{AccountsSynced: 1})
	_, ok := database.GetCache("accounts:all")
	assert.False(t, ok)
	_, ok = database.GetCache("transactions:acc-a:100")
	assert.True(t, ok, "no new transactions, transaction cache kept")

	invalidateCaches(context.Background(), models.RunSummary{AccountsSynced: 1, TotalNewTransactions: 3})
	_, ok = database.GetCache("transactions:acc-a:100")
	assert.False(t, ok)
}
