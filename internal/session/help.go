package session

// HelpText is shown once per process lifetime, on the first entry into
// command mode.
const HelpText = `solar tap commands:
  q | quit                   terminate
  monitor                    leave command mode
  enable experiment <n>      record experiment n
  motor inc <steps>          rotate shader motor by steps
  motor rot <degrees>        rotate shader motor by degrees
  shader open                open the shader
  shader close               close the shader
  compile                    build firmware (make)
  flash                      build and upload firmware (make upload)
`
