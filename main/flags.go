package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ogier/pflag"
	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/infra/conf"
)

const usageLine = "usage: xrelay [-l port] -k keyfile [-c file] [--format fmt] [--genkey file] [destination port]"

type options struct {
	listen     string
	keyFile    string
	keyFormat  string
	configFile string
	format     string
	genKey     string
	logLevel   string
	args       []string
	help       bool
}

// parseFlags returns the parsed options and any text meant for the user.
func parseFlags(args []string) (*options, string, error) {
	opts := new(options)
	var out bytes.Buffer

	fs := pflag.NewFlagSet("xrelay", pflag.ContinueOnError)
	fs.SetOutput(&out)
	fs.Usage = func() {
		fmt.Fprintln(&out, usageLine)
		fs.PrintDefaults()
	}
	fs.StringVarP(&opts.listen, "listen", "l", "", "run as reverse proxy: accept encrypted connections on this port")
	fs.StringVarP(&opts.keyFile, "key", "k", "", "file holding the shared key")
	fs.StringVar(&opts.keyFormat, "key-format", "", "key file format: raw or passphrase")
	fs.StringVarP(&opts.configFile, "config", "c", "", "config file")
	fs.StringVar(&opts.format, "format", "auto", "format of the config file: json, toml, yaml or auto")
	fs.StringVar(&opts.genKey, "genkey", "", "write a new random key to this file and exit")
	fs.StringVar(&opts.logLevel, "loglevel", "", "log level: debug, info, warning, error or none")
	fs.BoolVarP(&opts.help, "help", "h", false, "show this help")

	if err := fs.Parse(joinLongValues(fs, args)); err != nil {
		return nil, out.String(), err
	}
	if opts.help {
		fs.Usage()
		return opts, out.String(), nil
	}
	opts.args = fs.Args()
	if len(opts.args) > 2 {
		return nil, usageLine + "\n", errors.New("too many arguments")
	}
	return opts, "", nil
}

// joinLongValues rewrites "--name value" into "--name=value", the only long
// form pflag accepts for flags that take a value.
func joinLongValues(fs *pflag.FlagSet, args []string) []string {
	joined := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(joined, args[i:]...)
		}
		if strings.HasPrefix(arg, "--") && !strings.Contains(arg, "=") && i+1 < len(args) {
			if f := fs.Lookup(arg[2:]); f != nil && !isBoolFlag(f) {
				i++
				arg += "=" + args[i]
			}
		}
		joined = append(joined, arg)
	}
	return joined
}

func isBoolFlag(f *pflag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// destination joins the positional "host port" or "host:port" arguments.
func (o *options) destination() string {
	switch len(o.args) {
	case 1:
		return o.args[0]
	case 2:
		host := strings.Trim(o.args[0], "[]")
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
		return host + ":" + o.args[1]
	default:
		return ""
	}
}

// override returns the config given on the command line.
func (o *options) override() *conf.Config {
	config := &conf.Config{
		Listen:      o.listen,
		Destination: o.destination(),
	}
	if o.keyFile != "" || o.keyFormat != "" {
		config.Key = &conf.KeyConfig{File: o.keyFile, Format: o.keyFormat}
	}
	if o.logLevel != "" {
		config.LogConfig = &conf.LogConfig{LogLevel: o.logLevel}
	}
	return config
}
