package services

import "time"

// nowFn is the injectable clock. Tests swap it out to make story expiry and
// listing order deterministic.
var nowFn = time.Now
