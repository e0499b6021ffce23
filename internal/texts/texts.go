// Package texts holds the longer canned messages the bot sends: the
// welcome blurb and the reading-speed calibration passage.
package texts

import "strings"

// Welcome is sent when a user first talks to the bot. The caller prefixes
// it with a personalized greeting.
const Welcome = `I keep track of what you read.

Tell me about a book in plain words, for example "I am reading Dune" or
"I finished The Trial", and I will look it up, file it on your shelf, and
follow your progress. While you are reading a book, tell me how many pages
you got through and I will estimate how long you have left.

Use /calculate_reading_speed at any time to measure your personal reading
speed; until then I assume the average of 300 words per minute.`

// CalibrationPassage is what the user reads during speed calibration. It
// is deliberately plain prose so reading pace is not skewed by unfamiliar
// vocabulary.
const CalibrationPassage = `Reading is one of the few habits that repays exactly what you put into
it. A reader who sets aside twenty minutes a day finishes more books in a
year than most people manage in five, and does it without ever feeling
rushed. The pages add up quietly, the way coins add up in a jar.

Speed matters less than people think, but knowing your own pace is
useful. If you know how fast you read, you know whether the novel on your
nightstand is a weekend project or a month of evenings, and you can plan
around the truth instead of the guess. Most adults read somewhere near
three hundred words in a minute, a little faster with light fiction and a
little slower with dense material.

This passage exists only to be timed. Read it at your natural pace, the
pace you would use with any book you enjoy. Do not race through it, and
do not slow down to savor it either. When you reach the final sentence,
say so, and the clock stops.`

// CalibrationWordCount is the word count of CalibrationPassage, computed
// once at startup.
var CalibrationWordCount = len(strings.Fields(CalibrationPassage))
