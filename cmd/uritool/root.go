package main

import (
	"log/slog"
	"net"
	"net/url"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
	"github.com/ghettovoice/uribuilder/internal/grammar"
	"github.com/ghettovoice/uribuilder/internal/log"
	"github.com/ghettovoice/uribuilder/uri"
)

type app struct {
	configPath  string
	mode        string
	encode      bool
	encodeSlash bool
	strictHost  bool
	logFormat   string
	logLevel    string

	cfg config
	log *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{log: log.Noop}
	cmd := &cobra.Command{
		Use:           "uritool",
		Short:         "Build and inspect URI templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file path")
	flags.StringVar(&a.mode, "query-param-mode", "", "query parameter mode: multi_pairs, comma_separated or array_pairs")
	flags.BoolVar(&a.encode, "encode", true, "encode path, query and matrix values added by flags")
	flags.BoolVar(&a.encodeSlash, "encode-slash", true, `encode "/" in substituted values`)
	flags.BoolVar(&a.strictHost, "strict-host", false, "require a DNS name or IP address as host")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console, dev, text, json or none")
	flags.StringVar(&a.logLevel, "log-level", "", "log level")

	cmd.AddCommand(
		newBuildCommand(a),
		newTemplateCommand(a),
		newVarsCommand(a),
		newEncodeCommand(a),
		newDecodeCommand(a),
		newRelativizeCommand(a),
		newLinkCommand(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := readConfig(a.configPath)
	if err != nil {
		return errtrace.Wrap(err)
	}

	flags := cmd.Flags()
	if flags.Changed("query-param-mode") {
		if cfg.QueryParamMode, err = uri.ParseQueryParamMode(a.mode); err != nil {
			return errtrace.Wrap(err)
		}
	}
	if flags.Changed("encode") {
		cfg.Encode = a.encode
	}
	if flags.Changed("encode-slash") {
		cfg.EncodeSlash = a.encodeSlash
	}
	if flags.Changed("strict-host") {
		cfg.StrictHost = a.strictHost
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = log.Format(a.logFormat)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}

	lvl, err := cfg.level()
	if err != nil {
		return errtrace.Wrap(err)
	}
	if a.log, err = log.New(cfg.Log.Format, lvl, cmd.ErrOrStderr()); err != nil {
		return errtrace.Wrap(err)
	}
	a.cfg = cfg
	a.log.Debug("config loaded", "path", a.configPath, "config", log.FmtValue(cfg, false))
	return nil
}

func (a *app) builder(tmpl string) (*uri.Builder, error) {
	b, err := uri.FromTemplate(tmpl)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	b.Encode(a.cfg.Encode).QueryParamMode(a.cfg.QueryParamMode)
	return b, errtrace.Wrap(b.Err())
}

// checkHost applies the strict host rule to a built URI.
func (a *app) checkHost(s string) error {
	if !a.cfg.StrictHost {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("uri %q: %v", s, err))
	}
	h := u.Hostname()
	if h == "" || net.ParseIP(h) != nil || grammar.IsDNSName(h) {
		return nil
	}
	return errtrace.Wrap(errorutil.NewInvalidArgumentError("host %q is not a DNS name", h))
}

// pair is one "name=value" flag value.
type pair struct {
	name, value string
}

func parsePairs(ss []string) ([]pair, error) {
	ps := make([]pair, 0, len(ss))
	for _, s := range ss {
		n, v, ok := strings.Cut(s, "=")
		if !ok || n == "" {
			return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("%q: want name=value", s))
		}
		ps = append(ps, pair{n, v})
	}
	return ps, nil
}

func parseValues(ss []string) (uri.Values, error) {
	ps, err := parsePairs(ss)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	vs := make(uri.Values, len(ps))
	for _, p := range ps {
		vs[p.name] = p.value
	}
	return vs, nil
}

// groupPairs groups values by name keeping the order names are first seen.
func groupPairs(ps []pair) (names []string, vals map[string][]any) {
	vals = make(map[string][]any, len(ps))
	for _, p := range ps {
		if _, ok := vals[p.name]; !ok {
			names = append(names, p.name)
		}
		vals[p.name] = append(vals[p.name], p.value)
	}
	return names, vals
}

func toAny(ss []string) []any {
	vs := make([]any, len(ss))
	for i, s := range ss {
		vs[i] = s
	}
	return vs
}
