// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpeer

import (
	"strconv"

	"github.com/SCL-BSG/BSGold/wire"
)

// Canonical signed-message strings use decimal representations of
// integers and the dotted-quad:port form for endpoints, concatenated
// without separators (spec §6).

func announceCanonical(endpoint wire.NetAddress, announceTime int64, operatorPK, collateralPK []byte, protocol int32, rewarded bool, rewardScript []byte, rewardPercent int32) []byte {
	buf := append([]byte(endpoint.String()), strconv.FormatInt(announceTime, 10)...)
	buf = append(buf, operatorPK...)
	buf = append(buf, collateralPK...)
	buf = append(buf, strconv.FormatInt(int64(protocol), 10)...)
	if rewarded {
		buf = append(buf, rewardScript...)
		buf = append(buf, strconv.FormatInt(int64(rewardPercent), 10)...)
	}
	return buf
}

func heartbeatCanonical(endpoint wire.NetAddress, sigtime int64, stop bool) []byte {
	buf := append([]byte(endpoint.String()), strconv.FormatInt(sigtime, 10)...)
	if stop {
		buf = append(buf, '1')
	} else {
		buf = append(buf, '0')
	}
	return buf
}

func voteCanonical(collateral wire.OutPoint, vote int32) []byte {
	buf := append([]byte(collateral.String()), strconv.FormatInt(int64(vote), 10)...)
	return buf
}
