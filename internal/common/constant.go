package common

import "time"

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// PolicyZone is the canonical zone in which every policy and schedule time
// is interpreted, independent of the evaluating machine's local zone.
var PolicyZone = time.FixedZone("UTC+9", 9*60*60)
