// Package target resolves the set of appliances a report run gathers from:
// always the local appliance, plus its cluster partner when one is configured.
package target

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"storedoc/internal/config"
	"storedoc/internal/report"
	"storedoc/internal/rest"
)

// Set holds the resolved targets for one run, in render order (local first),
// together with their sessions for logout and call accounting.
type Set struct {
	Targets []report.Target
	Clients []*rest.Client
}

// Resolve logs in to the local appliance and discovers the cluster partner
// through the cluster-configuration endpoint. Targets are resolved once and
// held immutable for the run.
func Resolve(ctx context.Context, log *slog.Logger, profile config.Profile) (*Set, error) {
	local, err := connect(ctx, log, profile, profile.Host)
	if err != nil {
		return nil, err
	}

	set := &Set{
		Targets: []report.Target{{Hostname: profile.Host, Query: local}},
		Clients: []*rest.Client{local},
	}

	partnerHost, partnerName, err := discoverPartner(ctx, log, local, profile.Host)
	if err != nil {
		return nil, err
	}
	if partnerHost == "" {
		return set, nil
	}

	partner, err := connect(ctx, log, profile, partnerHost)
	if err != nil {
		return nil, fmt.Errorf("connecting to cluster partner %s: %w", partnerHost, err)
	}
	set.Targets = append(set.Targets, report.Target{Hostname: partnerName, Query: partner})
	set.Clients = append(set.Clients, partner)
	return set, nil
}

// Logout ends every session, keeping the first error.
func (s *Set) Logout(ctx context.Context) error {
	var firstErr error
	for _, c := range s.Clients {
		if err := c.Logout(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func connect(ctx context.Context, log *slog.Logger, profile config.Profile, host string) (*rest.Client, error) {
	client, err := rest.New(rest.Config{
		Host:     host,
		Port:     profile.Port,
		Scheme:   profile.Scheme,
		Username: profile.Username,
		Password: profile.Password,
		Insecure: profile.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// discoverPartner asks the local appliance for its cluster configuration and
// returns the first member that is not the local host. An appliance that is
// not clustered answers with an empty body or 404; both mean "no partner".
func discoverPartner(ctx context.Context, log *slog.Logger, local *rest.Client, localHost string) (host, name string, err error) {
	resp, err := local.Get(ctx, "rsf/clusters", nil)
	if err != nil {
		var statusErr *rest.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
			log.Debug("no cluster configured", "host", localHost)
			return "", "", nil
		}
		return "", "", fmt.Errorf("discovering cluster partner: %w", err)
	}
	host, name = pickPartner(resp, localHost)
	if host != "" {
		log.Info("cluster partner discovered", "partner", name, "address", host)
	}
	return host, name, nil
}

// pickPartner extracts the first cluster member that is not the local host
// from a decoded cluster-configuration response.
func pickPartner(resp any, localHost string) (host, name string) {
	clusters, ok := resp.(map[string]any)
	if !ok {
		return "", ""
	}
	data, _ := clusters["data"].([]any)
	if len(data) == 0 {
		return "", ""
	}
	cluster, _ := data[0].(map[string]any)
	nodes, _ := cluster["nodes"].([]any)
	for _, n := range nodes {
		node, ok := n.(map[string]any)
		if !ok {
			continue
		}
		machine, _ := node["machineName"].(string)
		address, _ := node["ipAddress"].(string)
		if machine == localHost || address == localHost || address == "" {
			continue
		}
		if machine == "" {
			machine = address
		}
		return address, machine
	}
	return "", ""
}
