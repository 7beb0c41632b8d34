package sim

import "time"

// now stamps journal records; tests swap it for a fixed clock.
var now = time.Now
