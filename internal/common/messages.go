package common

import "fmt"

// MsgSomethingWentWrong replaces transport and parse errors in anything
// shown to the user. The original error is logged instead.
const MsgSomethingWentWrong = "Something Went Wrong, Please Try Again!!!"

// MutationSuccess builds the message carried by CREATE/UPDATE/DELETE
// success actions, e.g. "Client Added Successfully".
func MutationSuccess(entity, verb string) string {
	return fmt.Sprintf("%s %s Successfully", entity, verb)
}
