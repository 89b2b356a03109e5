// Shared helpers for pantry CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/pantry/internal/content"
	"github.com/mesh-intelligence/pantry/internal/logger"
	"github.com/mesh-intelligence/pantry/internal/mirror"
	"github.com/mesh-intelligence/pantry/internal/relay"
	"github.com/mesh-intelligence/pantry/internal/store"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// app bundles the opened subsystems for one CLI invocation.
type app struct {
	kv      *store.KV
	content *content.Store
	gateway *relay.Gateway
}

// openApp resolves the data dir, opens the local store, runs the content
// bootstrap, and wires the gateway. The caller must defer a.close().
func openApp(ctx context.Context) (*app, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	kv, err := store.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	log := logger.New("pantry")
	client := mirror.NewClient(fileMirrorConfig(), appConfig.GetString(cfgKeyDiscoveryURL))
	cs := content.New(kv, client, appConfig.GetString(cfgKeySeedFile), appConfig.GetDuration(cfgKeySyncQuiet), log)
	cs.Init(ctx)

	gw := relay.NewGateway(kv, log)
	if !gw.IsConfigured() {
		if cfg := fileRelayConfig(); cfg.Complete() {
			if err := gw.Configure(cfg); err != nil {
				log.Warn().Err(err).Msg("failed to store relay credentials from config file")
			}
		}
	}

	return &app{kv: kv, content: cs, gateway: gw}, nil
}

// close releases the syncer and the database handle.
func (a *app) close() {
	a.content.Close()
	if err := a.kv.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close local store: %v\n", err)
	}
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printEntry writes one entry in either table or JSON mode.
func printEntry(e types.Entry) error {
	if flagJSON {
		return printJSON(e)
	}
	fmt.Printf("%s  %-10s  %-10s  %s\n", e.ID, e.Kind, e.Date, e.Title)
	return nil
}
