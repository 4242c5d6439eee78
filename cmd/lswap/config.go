// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool"
)

// poolConfigFile is the yaml pool config, e.g.
//
//	owner: 0x7567d83b7b8d80addcb281a71d54fc7b3364ffed
//	denom: uluna
//	targetToken: 0x0000000000000000000000000000456e65726779
//	ratioSource: 0xd3ef28df6b553ed2fc47259e8134319cb1121a2a
//	feeRate: 100
//	ratio: "1.02"
type poolConfigFile struct {
	Owner       string  `yaml:"owner"`
	Denom       string  `yaml:"denom"`
	TargetToken string  `yaml:"targetToken"`
	RatioSource string  `yaml:"ratioSource"`
	FeeRate     *uint64 `yaml:"feeRate"`
	Ratio       string  `yaml:"ratio"` // fixed ratio, used when no ratio url is set
}

type poolSettings struct {
	config pool.Config
	ratio  *lswap.Decimal
}

func parseAddress(field, s string) (lswap.Address, error) {
	if s == "" {
		return lswap.Address{}, nil
	}
	addr, err := lswap.ParseAddress(s)
	if err != nil {
		return lswap.Address{}, errors.Wrap(err, field)
	}
	return *addr, nil
}

func decodePoolConfig(r io.Reader) (*poolSettings, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file poolConfigFile
	if err := decoder.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decode pool config")
	}

	var (
		settings = &poolSettings{}
		err      error
	)
	if settings.config.Owner, err = parseAddress("owner", file.Owner); err != nil {
		return nil, err
	}
	if settings.config.TargetToken, err = parseAddress("targetToken", file.TargetToken); err != nil {
		return nil, err
	}
	if settings.config.RatioSource, err = parseAddress("ratioSource", file.RatioSource); err != nil {
		return nil, err
	}
	settings.config.Denom = file.Denom
	settings.config.FeeRate = pool.DefaultFeeRate
	if file.FeeRate != nil {
		settings.config.FeeRate = *file.FeeRate
	}
	if file.Ratio != "" {
		r, err := lswap.ParseDecimal(file.Ratio)
		if err != nil {
			return nil, errors.Wrap(err, "ratio")
		}
		settings.ratio = &r
	}
	return settings, nil
}

func loadPoolConfig(path string) (*poolSettings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open pool config")
	}
	defer file.Close()
	return decodePoolConfig(file)
}
